package vintage

import (
	"context"
	"errors"
	"reflect"
	"time"
)

// Registration describes how to recognize and upgrade one representation of
// T: a version tag, the wire shape the content must parse into for this
// registration to be a candidate, and the conversion into T.
// Build registrations with Current and Upgrade.
type Registration[T any] struct {
	tag     Tag
	attempt func(*Content) (T, error)
}

// Tag returns the version tag this registration is keyed by.
func (r Registration[T]) Tag() Tag {
	return r.tag
}

// Current returns the registration for the present-day representation of T:
// the content is decoded directly into T with no conversion. Every resolver
// carries exactly one of these, and it is always tried first.
func Current[T any]() Registration[T] {
	return Registration[T]{
		tag: CurrentTag,
		attempt: func(c *Content) (T, error) {
			return Reinterpret[T](c)
		},
	}
}

// Upgrade returns the registration for a historical representation of T.
// The content must decode into the legacy wire type L for the registration
// to match; convert then maps the legacy value into T and may itself fail
// (structurally valid data can still be semantically unconvertible, e.g.
// unparsable numeric text).
func Upgrade[L, T any](tag Tag, convert func(L) (T, error)) Registration[T] {
	return Registration[T]{
		tag: tag,
		attempt: func(c *Content) (T, error) {
			var zero T

			legacy, err := Reinterpret[L](c)
			if err != nil {
				return zero, err
			}

			v, err := convert(legacy)
			if err != nil {
				return zero, &ConvertError{Tag: tag, Cause: err}
			}
			return v, nil
		},
	}
}

// Resolver resolves captured content into T by trying its registrations in
// order: current first, then the remaining registrations as declared.
//
// A Resolver is a pure computation over its registration list and the content
// it is given; it holds no mutable state after configuration and is safe for
// concurrent use. Configure StrictConversion before the first Resolve.
type Resolver[T any] struct {
	regs     []Registration[T]
	current  int
	strict   bool
	typeName string
}

// NewResolver builds a resolver from an ordered registration list.
// The list must contain exactly one Current registration (at any position)
// and no duplicate tags; violations fail with a ConfigError. There is no cap
// on the number of registrations.
func NewResolver[T any](regs ...Registration[T]) (*Resolver[T], error) {
	r := &Resolver[T]{
		regs:     regs,
		current:  -1,
		typeName: reflect.TypeFor[T]().String(),
	}

	seen := make(map[Tag]bool, len(regs))
	for i, reg := range regs {
		if reg.attempt == nil {
			return nil, newConfigError(ErrInvalidRegistration, "", "empty registration")
		}
		if seen[reg.tag] {
			return nil, newConfigError(ErrInvalidRegistration, "", "duplicate tag "+reg.tag.String())
		}
		seen[reg.tag] = true

		if reg.tag == CurrentTag {
			r.current = i
		}
	}
	if r.current < 0 {
		return nil, newConfigError(ErrInvalidRegistration, "", "no current registration")
	}

	emitResolverCreated(context.Background(), r.typeName, len(regs))
	return r, nil
}

// StrictConversion makes converter failures terminal instead of falling
// through to later registrations. A structurally matching registration whose
// converter rejects the value then surfaces a ConvertError immediately,
// which keeps converter bugs from being masked by a later accidental match.
// Returns the resolver for chaining; call before the first Resolve.
func (r *Resolver[T]) StrictConversion() *Resolver[T] {
	r.strict = true
	return r
}

// Resolve resolves captured content into T.
//
// The current registration is tried first; on success the value is returned
// with a single decode attempt. Otherwise the remaining registrations are
// tried in declared order, skipping structural mismatches and (unless
// StrictConversion is set) converter failures. The first registration to
// produce a value wins; declaration order is the tie-break when the content
// matches more than one legacy shape. Exhaustion fails with a NoMatchError.
func (r *Resolver[T]) Resolve(ctx context.Context, c *Content) (T, error) {
	start := time.Now()
	emitResolveStart(ctx, c.ContentType(), r.typeName)

	v, tag, attempts, err := r.resolve(c)

	matched := ""
	if tag != nil {
		matched = tag.String()
	}
	emitResolveComplete(ctx, c.ContentType(), r.typeName, matched, attempts, time.Since(start), err)

	return v, err
}

// ResolveBytes captures raw with the given codec and resolves the result.
func (r *Resolver[T]) ResolveBytes(ctx context.Context, codec Codec, raw []byte) (T, error) {
	c, err := Capture(codec, raw)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.Resolve(ctx, c)
}

// ResolveField implements FieldResolver for use with Processor.
func (r *Resolver[T]) ResolveField(ctx context.Context, c *Content) (any, error) {
	v, err := r.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// resolve runs the trial-decode loop. It returns the value, the matched tag
// (nil on exhaustion) and the number of attempts made.
func (r *Resolver[T]) resolve(c *Content) (T, Tag, int, error) {
	var zero T
	failures := make([]Attempt, 0, len(r.regs))

	for _, i := range r.order() {
		reg := r.regs[i]

		v, err := reg.attempt(c)
		if err == nil {
			return v, reg.tag, len(failures) + 1, nil
		}

		if r.strict && errors.Is(err, ErrConvert) {
			return zero, reg.tag, len(failures) + 1, err
		}

		failures = append(failures, Attempt{Tag: reg.tag, Err: err})
	}

	return zero, nil, len(failures), &NoMatchError{TypeName: r.typeName, Attempts: failures}
}

// order yields registration indices with current hoisted to the front.
func (r *Resolver[T]) order() []int {
	order := make([]int, 0, len(r.regs))
	order = append(order, r.current)
	for i := range r.regs {
		if i != r.current {
			order = append(order, i)
		}
	}
	return order
}
