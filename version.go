package vintage

import (
	"fmt"

	"github.com/Masterminds/semver"
	"github.com/google/uuid"
)

// Tag identifies one historical or current representation of a value.
//
// Tags are opaque keys: they never appear in serialized payloads and carry no
// behavior of their own. They exist to make registrations distinguishable and
// to name the matched version in diagnostics. All Tag values produced by this
// package are comparable and safe to use as map keys.
type Tag interface {
	fmt.Stringer

	// versionTag restricts implementations to this package so every Tag
	// stays comparable.
	versionTag()
}

// CurrentTag marks the registration holding the present-day representation.
// Exactly one registration per resolver carries it, and it is always tried
// first regardless of its position in the registration list.
var CurrentTag Tag = currentTag{}

type currentTag struct{}

func (currentTag) versionTag()    {}
func (currentTag) String() string { return "current" }

// UUID returns a tag keyed by a 128-bit identifier.
func UUID(id uuid.UUID) Tag {
	return uuidTag{id: id}
}

// MustUUID returns a tag keyed by the given UUID string, panicking on
// malformed input. Intended for package-level registration declarations.
func MustUUID(s string) Tag {
	return uuidTag{id: uuid.MustParse(s)}
}

type uuidTag struct{ id uuid.UUID }

func (uuidTag) versionTag()      {}
func (t uuidTag) String() string { return t.id.String() }

// Num returns a tag keyed by a 32-bit sequence number.
func Num(n uint32) Tag {
	return numTag{n: n}
}

type numTag struct{ n uint32 }

func (numTag) versionTag()      {}
func (t numTag) String() string { return fmt.Sprintf("v%d", t.n) }

// Sem returns a tag keyed by a (major, minor, patch) triple.
func Sem(major, minor, patch uint64) Tag {
	return semTag{major: major, minor: minor, patch: patch}
}

// ParseSem returns a tag keyed by the triple parsed from a semantic version
// string such as "0.3.1". Build metadata and prerelease suffixes are not part
// of the key.
func ParseSem(s string) (Tag, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("parse semantic version %q: %w", s, err)
	}
	return semTag{
		major: uint64(v.Major()),
		minor: uint64(v.Minor()),
		patch: uint64(v.Patch()),
	}, nil
}

// MustParseSem is ParseSem panicking on malformed input.
// Intended for package-level registration declarations.
func MustParseSem(s string) Tag {
	t, err := ParseSem(s)
	if err != nil {
		panic(err)
	}
	return t
}

type semTag struct{ major, minor, patch uint64 }

func (semTag) versionTag() {}
func (t semTag) String() string {
	return fmt.Sprintf("v%d.%d.%d", t.major, t.minor, t.patch)
}

// Name returns a tag keyed by a plain string, typically the name of the
// retired type it stands for (e.g., "OldString").
func Name(s string) Tag {
	return nameTag{name: s}
}

type nameTag struct{ name string }

func (nameTag) versionTag()      {}
func (t nameTag) String() string { return t.name }

// Labeled pairs a tag with a label, keeping the pair unique when two
// subsystems reuse the same version shape for the same target type.
func Labeled(tag Tag, label string) Tag {
	return labeledTag{tag: tag, label: label}
}

type labeledTag struct {
	tag   Tag
	label string
}

func (labeledTag) versionTag() {}
func (t labeledTag) String() string {
	return fmt.Sprintf("%s#%s", t.tag.String(), t.label)
}
