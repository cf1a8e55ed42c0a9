// Package vintage resolves serialized values whose wire representation has
// changed over the life of a program.
//
// Long-lived persisted or transmitted data frequently outlives the shape it
// was written in: a field that is a uint32 today may have been a decimal
// string two releases ago. The payloads already on disk carry no version
// marker, yet they must keep deserializing into the current in-memory type.
// Vintage handles this with an ordered trial-decode over the known historical
// shapes of a value.
//
// # Model
//
// Three pieces cooperate:
//
//   - Content: a serialized value captured once into a reusable, read-only
//     form that can be reinterpreted as any number of candidate types without
//     re-reading the input.
//   - Resolver: an ordered list of version registrations for one target type.
//     Each registration pairs an opaque version Tag with the legacy wire type
//     and a converter into the current type.
//   - Processor: record-level integration. Struct fields opt in via the
//     `versioned` tag and are resolved individually while the rest of the
//     record decodes normally.
//
// # Resolution
//
// The registration carrying the current tag is always tried first, keeping
// data already in the current format on a single-decode fast path. Remaining
// registrations are tried in declared order; the first one whose wire type
// matches the payload structurally and whose converter succeeds wins. Order
// is a correctness tie-break, not an optimization: when a payload matches
// more than one legacy shape, the earlier registration is the result.
//
// A registration that fails structurally is skipped silently. A registration
// whose converter rejects a structurally valid value is skipped the same way
// by default; StrictConversion surfaces it as a hard failure instead. If
// every registration fails, resolution returns a NoMatchError carrying
// per-attempt diagnostics.
//
// # Basic Usage
//
//	resolver, _ := vintage.NewResolver[uint32](
//	    vintage.Current[uint32](),
//	    vintage.Upgrade[string, uint32](vintage.Num(1), func(s string) (uint32, error) {
//	        n, err := strconv.ParseUint(s, 10, 32)
//	        return uint32(n), err
//	    }),
//	)
//
//	v, err := resolver.ResolveBytes(ctx, json.New(), payload)
//
// # Record Fields
//
//	type Account struct {
//	    ID      string `json:"id"`
//	    Balance uint32 `json:"balance" versioned:"balance"`
//	}
//
//	proc, _ := vintage.NewProcessor[Account](json.New(),
//	    vintage.WithResolver("balance", resolver),
//	)
//
//	account, err := proc.Decode(ctx, payload)
//
// # Version Tags
//
// Tags are opaque keys that exist only to make registrations distinguishable.
// They never appear in the payload. Constructors cover the common shapes:
//
//   - UUID / MustUUID: 128-bit identifiers
//   - Num: 32-bit sequence numbers
//   - Sem / ParseSem: semantic version triples
//   - Name: plain string keys
//   - Labeled: pairs any tag with a label when two subsystems reuse the
//     same version shape
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//
// Any Codec works with Resolver. Processor additionally requires the codec to
// round-trip generic trees (maps, slices, scalars), which all three provided
// codecs do.
package vintage

import "context"

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// FieldResolver is the type-erased face of Resolver, letting a Processor hold
// resolvers for fields of different target types in one registry.
// Resolver[T] implements it.
type FieldResolver interface {
	// ResolveField resolves captured content into the resolver's target type.
	ResolveField(ctx context.Context, c *Content) (any, error)
}
