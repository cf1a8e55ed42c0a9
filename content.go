package vintage

import "reflect"

// Content is a serialized value captured once into a reusable form.
//
// A Content is read-only after capture: Reinterpret may be called any number
// of times, for any number of candidate types, without mutating the capture
// or affecting later calls. This is what lets a Resolver trial-decode the
// same payload against every registered version without re-reading the
// original input.
type Content struct {
	codec Codec
	raw   []byte
	node  any
}

// Capture fully parses raw into a Content using the given codec.
// Malformed input fails with a ParseError; resolution never starts on
// content that could not be captured.
func Capture(codec Codec, raw []byte) (*Content, error) {
	var node any
	if err := codec.Unmarshal(raw, &node); err != nil {
		return nil, &ParseError{Cause: err}
	}

	buf := make([]byte, len(raw))
	copy(buf, raw)

	return &Content{codec: codec, raw: buf, node: node}, nil
}

// capturedNode builds a Content from an already-parsed subtree, encoding it
// once so reinterpretation decodes from the retained bytes. Used by
// Processor to hand a single field's value to its resolver.
func capturedNode(codec Codec, node any) (*Content, error) {
	raw, err := codec.Marshal(node)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	return &Content{codec: codec, raw: raw, node: node}, nil
}

// ContentType returns the MIME type of the codec that captured this content.
func (c *Content) ContentType() string {
	return c.codec.ContentType()
}

// Bytes returns a copy of the captured serialized form.
func (c *Content) Bytes() []byte {
	buf := make([]byte, len(c.raw))
	copy(buf, c.raw)
	return buf
}

// Node returns the structural tree the capture parsed into (maps, slices,
// scalars as produced by the codec). Intended for inspection and diagnostics.
func (c *Content) Node() any {
	return c.node
}

// Reinterpret decodes the captured content into T.
// A shape the content does not match fails with a MismatchError; the content
// itself is untouched and may be reinterpreted again as another type.
func Reinterpret[T any](c *Content) (T, error) {
	var v T
	if err := c.codec.Unmarshal(c.raw, &v); err != nil {
		var zero T
		return zero, &MismatchError{TypeName: reflect.TypeFor[T]().String(), Cause: err}
	}
	return v, nil
}
