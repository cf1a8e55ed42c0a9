package vintage

import (
	"errors"
	"testing"
)

func TestParseError_Is(t *testing.T) {
	err := error(&ParseError{Cause: errors.New("unexpected end of input")})

	if !errors.Is(err, ErrParse) {
		t.Error("ParseError should unwrap to ErrParse")
	}
	if errors.Is(err, ErrNoMatch) {
		t.Error("ParseError should not match ErrNoMatch")
	}
}

func TestParseError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with cause",
			err:  &ParseError{Cause: errors.New("unexpected end of input")},
			want: "parse failed: unexpected end of input",
		},
		{
			name: "without cause",
			err:  &ParseError{},
			want: "parse failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMismatchError_Is(t *testing.T) {
	err := error(&MismatchError{TypeName: "uint32", Cause: errors.New("cannot unmarshal")})

	if !errors.Is(err, ErrMismatch) {
		t.Error("MismatchError should unwrap to ErrMismatch")
	}
	if errors.Is(err, ErrConvert) {
		t.Error("MismatchError should not match ErrConvert")
	}
}

func TestMismatchError_Message(t *testing.T) {
	err := &MismatchError{TypeName: "uint32", Cause: errors.New("cannot unmarshal string")}
	want := "structural mismatch for uint32: cannot unmarshal string"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestConvertError_Is(t *testing.T) {
	err := error(&ConvertError{Tag: Num(1), Cause: errors.New("invalid syntax")})

	if !errors.Is(err, ErrConvert) {
		t.Error("ConvertError should unwrap to ErrConvert")
	}
	if errors.Is(err, ErrMismatch) {
		t.Error("ConvertError should not match ErrMismatch")
	}
}

func TestConvertError_Message(t *testing.T) {
	err := &ConvertError{Tag: Num(1), Cause: errors.New("invalid syntax")}
	want := `convert failed for version "v1": invalid syntax`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNoMatchError_Is(t *testing.T) {
	err := error(&NoMatchError{TypeName: "uint32"})

	if !errors.Is(err, ErrNoMatch) {
		t.Error("NoMatchError should unwrap to ErrNoMatch")
	}
}

func TestNoMatchError_Message(t *testing.T) {
	err := &NoMatchError{
		TypeName: "uint32",
		Attempts: []Attempt{
			{Tag: CurrentTag, Err: errors.New("mismatch")},
			{Tag: Num(1), Err: errors.New("mismatch")},
			{Tag: Num(2), Err: errors.New("mismatch")},
		},
	}
	want := "no matching version for uint32: 3 registrations tried"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestConfigError_Is(t *testing.T) {
	err := newConfigError(ErrMissingResolver, "Balance", "balance")

	if !errors.Is(err, ErrMissingResolver) {
		t.Error("ConfigError should unwrap to ErrMissingResolver")
	}
	if errors.Is(err, ErrInvalidRegistration) {
		t.Error("ConfigError should not match ErrInvalidRegistration")
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newConfigError(ErrMissingResolver, "Balance", "balance"),
			want: "missing resolver: balance (field Balance)",
		},
		{
			name: "detail only",
			err:  &ConfigError{Err: ErrInvalidRegistration, Detail: "duplicate tag v1"},
			want: "invalid registration: duplicate tag v1",
		},
		{
			name: "field only",
			err:  &ConfigError{Err: ErrMissingResolver, Field: "Balance"},
			want: "missing resolver (field Balance)",
		},
		{
			name: "bare",
			err:  &ConfigError{Err: ErrInvalidRegistration},
			want: "invalid registration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
