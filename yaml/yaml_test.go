package yaml

import (
	"context"
	"strconv"
	"testing"

	"github.com/zoobzio/vintage"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type TestStruct struct {
		Name  string `yaml:"name"`
		Value int    `yaml:"value"`
	}

	original := TestStruct{Name: "test", Value: 42}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored TestStruct
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored.Name != original.Name || restored.Value != original.Value {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v struct {
		Name string `yaml:"name"`
	}
	if err := c.Unmarshal([]byte("{name: "), &v); err == nil {
		t.Error("Unmarshal() should fail on truncated input")
	}
}

func TestResolveLegacyValue(t *testing.T) {
	// Resolution is format-agnostic: a YAML payload in the retired text
	// form upgrades the same way a JSON one does.
	resolver, err := vintage.NewResolver[uint32](
		vintage.Current[uint32](),
		vintage.Upgrade[string, uint32](vintage.Num(1), func(s string) (uint32, error) {
			n, err := strconv.ParseUint(s, 10, 32)
			return uint32(n), err
		}),
	)
	if err != nil {
		t.Fatalf("NewResolver() error: %v", err)
	}

	v, err := resolver.ResolveBytes(context.Background(), New(), []byte(`"100"`))
	if err != nil {
		t.Fatalf("ResolveBytes() error: %v", err)
	}
	if v != 100 {
		t.Errorf("ResolveBytes() = %d, want 100", v)
	}
}
