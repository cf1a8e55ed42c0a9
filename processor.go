package vintage

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register tags with sentinel
	sentinel.Tag("versioned")
	sentinel.Tag("json")
}

// Processor decodes records whose annotated fields may arrive in a
// historical representation.
//
// Fields opt in via the `versioned` struct tag; the tag value names the
// resolver to apply:
//
//	type Account struct {
//	    ID      string `json:"id"`
//	    Balance uint32 `json:"balance" versioned:"balance"`
//	}
//
// On Decode, the payload is captured once into a structural tree. Versioned
// fields are cut out of the tree and handed to their resolvers as individual
// Content captures; the remainder decodes into the record normally. Encode
// always writes the current representation.
//
// Processors are safe for concurrent use. Resolvers may be supplied as
// options at construction or via SetResolver; validation runs once on the
// first operation, so register every resolver before the first Decode.
//
// Wire keys for versioned fields follow the `json` struct tag, falling back
// to the Go field name. The codec must round-trip generic trees (maps,
// slices, scalars); the json, yaml, and msgpack subpackages all qualify.
type Processor[T any] struct {
	codec Codec

	// Mutable configuration protected by mu
	mu        sync.RWMutex
	resolvers map[string]FieldResolver

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error

	// Versioned field plans (immutable after construction)
	plans []versionedFieldPlan

	// Type metadata
	typeName string
}

// versionedFieldPlan describes how to locate and resolve a single field.
type versionedFieldPlan struct {
	index      []int    // reflect.Value field access path
	name       string   // field name for error messages
	resolver   string   // resolver name from the versioned tag
	wirePath   []string // key path in the decoded payload tree
	ptrIndices []int    // indices where pointer allocation is needed
}

// ProcessorOption configures a Processor at construction.
type ProcessorOption func(*processorConfig)

type processorConfig struct {
	resolvers map[string]FieldResolver
}

// WithResolver registers a resolver for the named versioned field.
func WithResolver(name string, r FieldResolver) ProcessorOption {
	return func(cfg *processorConfig) {
		cfg.resolvers[name] = r
	}
}

// NewProcessor creates a new Processor for type T.
//
// Field plans are built once by scanning T's struct tags. Resolvers for
// every versioned field must be registered (here or via SetResolver) before
// the first Decode; use Validate to check configuration at startup.
func NewProcessor[T any](codec Codec, opts ...ProcessorOption) (*Processor[T], error) {
	plans, typeName, err := buildVersionedPlans[T]()
	if err != nil {
		return nil, err
	}

	cfg := processorConfig{resolvers: make(map[string]FieldResolver)}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Processor[T]{
		codec:     codec,
		resolvers: cfg.resolvers,
		plans:     plans,
		typeName:  typeName,
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), typeName)
	return p, nil
}

// SetResolver registers a resolver for the named versioned field.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor[T]) SetResolver(name string, r FieldResolver) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resolvers[name] = r
	return p
}

// Validate checks that every versioned field has a resolver registered.
//
// Validation also runs automatically on first operation. Calling Validate
// explicitly allows catching configuration errors at startup.
func (p *Processor[T]) Validate() error {
	return p.ensureValidated()
}

// ensureValidated runs validation once and caches the result.
func (p *Processor[T]) ensureValidated() error {
	p.validateOnce.Do(func() {
		p.mu.RLock()
		defer p.mu.RUnlock()
		for _, plan := range p.plans {
			if _, ok := p.resolvers[plan.resolver]; !ok {
				p.validateErr = newConfigError(ErrMissingResolver, plan.name, plan.resolver)
				return
			}
		}
	})
	return p.validateErr
}

// buildVersionedPlans creates field plans for type T by scanning struct tags.
func buildVersionedPlans[T any]() ([]versionedFieldPlan, string, error) {
	spec := sentinel.Scan[T]()

	var plans []versionedFieldPlan
	if err := collectVersionedPlans(&plans, spec, nil, nil, nil, ""); err != nil {
		return nil, "", err
	}

	return plans, spec.TypeName, nil
}

// collectVersionedPlans recursively processes fields and nested structs.
func collectVersionedPlans(plans *[]versionedFieldPlan, spec sentinel.Metadata, parentIndex []int, wirePrefix []string, ptrIndices []int, namePrefix string) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}
		wirePath := append(append([]string{}, wirePrefix...), wireKey(field))

		if val, ok := field.Tags["versioned"]; ok {
			if val == "" {
				return newConfigError(ErrInvalidRegistration, fullName, "versioned tag needs a resolver name")
			}
			*plans = append(*plans, versionedFieldPlan{
				index:      fullIndex,
				name:       fullName,
				resolver:   val,
				wirePath:   wirePath,
				ptrIndices: ptrIndices,
			})
			continue
		}

		// Handle nested structs
		if field.Kind == sentinel.KindStruct {
			nestedSpec := scanNestedType(field.ReflectType)
			if nestedSpec != nil {
				if err := collectVersionedPlans(plans, *nestedSpec, fullIndex, wirePath, ptrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		// Handle pointer to struct
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			nestedSpec := scanNestedType(field.ReflectType.Elem())
			if nestedSpec != nil {
				newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := collectVersionedPlans(plans, *nestedSpec, fullIndex, wirePath, newPtrIndices, fullName); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseVersionedTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}

// parseVersionedTags extracts the tags this package reads from a struct tag.
func parseVersionedTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range []string{"versioned", "json"} {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}

// wireKey returns the key a field is serialized under: the json tag name
// when present, the Go field name otherwise.
func wireKey(field sentinel.FieldMetadata) string {
	tag, ok := field.Tags["json"]
	if !ok {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// Decode unmarshals data into T, resolving each versioned field through its
// registered resolver while the rest of the record decodes normally.
//
// The payload is parsed once; each versioned field's subtree becomes its own
// Content capture. A versioned field absent from the payload fails with
// ErrMissingField, and a field none of whose versions match fails with the
// resolver's NoMatchError. No partial record is produced on error.
func (p *Processor[T]) Decode(ctx context.Context, data []byte) (*T, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitDecodeStart(ctx, p.codec.ContentType(), p.typeName)

	var retErr error
	defer func() {
		emitDecodeComplete(ctx, p.codec.ContentType(), p.typeName,
			time.Since(start), len(p.plans), retErr)
	}()

	// No versioned fields: plain decode
	if len(p.plans) == 0 {
		var obj T
		if err := p.codec.Unmarshal(data, &obj); err != nil {
			retErr = &ParseError{Cause: err}
			return nil, retErr
		}
		return &obj, nil
	}

	var tree any
	if err := p.codec.Unmarshal(data, &tree); err != nil {
		retErr = &ParseError{Cause: err}
		return nil, retErr
	}

	// Decode everything except the versioned leaves into the record.
	// Legacy-shaped values would otherwise fail the typed unmarshal.
	base, err := p.codec.Marshal(pruneVersioned(tree, p.plans))
	if err != nil {
		retErr = &ParseError{Cause: err}
		return nil, retErr
	}

	var obj T
	if err := p.codec.Unmarshal(base, &obj); err != nil {
		retErr = &ParseError{Cause: err}
		return nil, retErr
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	rv := reflect.ValueOf(&obj).Elem()
	for _, plan := range p.plans {
		node, ok := lookupNode(tree, plan.wirePath)
		if !ok {
			retErr = fmt.Errorf("field %s: %w", plan.name, ErrMissingField)
			return nil, retErr
		}

		content, err := capturedNode(p.codec, node)
		if err != nil {
			retErr = fmt.Errorf("field %s: %w", plan.name, err)
			return nil, retErr
		}

		resolved, err := p.resolvers[plan.resolver].ResolveField(ctx, content)
		if err != nil {
			retErr = fmt.Errorf("field %s: %w", plan.name, err)
			return nil, retErr
		}

		if err := setField(rv, plan, resolved); err != nil {
			retErr = err
			return nil, retErr
		}
	}

	return &obj, nil
}

// Encode marshals obj in the current representation.
// Versioned fields need no special handling on egress: the in-memory value
// is by definition already current.
func (p *Processor[T]) Encode(ctx context.Context, obj *T) ([]byte, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitEncodeStart(ctx, p.codec.ContentType(), p.typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitEncodeComplete(ctx, p.codec.ContentType(), p.typeName,
			len(retData), time.Since(start), retErr)
	}()

	if obj == nil {
		retData, retErr = p.codec.Marshal(nil)
		return retData, retErr
	}

	retData, retErr = p.codec.Marshal(obj)
	return retData, retErr
}

// pruneVersioned returns a copy of the payload tree with every versioned
// leaf removed. Maps along pruned paths are copied; the original tree is
// left untouched.
func pruneVersioned(tree any, plans []versionedFieldPlan) any {
	out := tree
	for _, plan := range plans {
		out = prunePath(out, plan.wirePath)
	}
	return out
}

// prunePath removes the leaf at path from node, copying maps on the way down.
func prunePath(node any, path []string) any {
	m, ok := node.(map[string]any)
	if !ok {
		return node
	}

	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}

	if len(path) == 1 {
		delete(cp, path[0])
		return cp
	}

	if child, ok := cp[path[0]]; ok {
		cp[path[0]] = prunePath(child, path[1:])
	}
	return cp
}

// lookupNode walks the payload tree along a wire-key path.
func lookupNode(tree any, path []string) (any, bool) {
	node := tree
	for _, key := range path {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// setField stores a resolved value at a plan's field path, allocating nil
// pointers along the way.
func setField(rv reflect.Value, plan versionedFieldPlan, val any) error {
	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	current := rv
	for i, idx := range plan.index {
		current = current.Field(idx)

		if ptrSet[i] {
			if current.IsNil() {
				if !current.CanSet() {
					return fmt.Errorf("field %s: cannot allocate nil pointer in path", plan.name)
				}
				current.Set(reflect.New(current.Type().Elem()))
			}
			current = current.Elem()
		}
	}

	if !current.CanSet() {
		return fmt.Errorf("field %s: cannot set", plan.name)
	}

	v := reflect.ValueOf(val)
	if !v.IsValid() {
		current.Set(reflect.Zero(current.Type()))
		return nil
	}
	if !v.Type().AssignableTo(current.Type()) {
		if !v.Type().ConvertibleTo(current.Type()) {
			return fmt.Errorf("field %s: resolver returned %s, want %s", plan.name, v.Type(), current.Type())
		}
		v = v.Convert(current.Type())
	}
	current.Set(v)
	return nil
}
