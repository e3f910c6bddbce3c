package curvefit

import (
	"errors"
	"testing"
)

func TestNewSignature(t *testing.T) {
	sig, err := NewSignature("linear", []string{"x"}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewSignature failed: %v", err)
	}
	if sig.Name() != "linear" {
		t.Errorf("Expected name linear, got %q", sig.Name())
	}
	if sig.NumArgs() != 1 || sig.NumParams() != 2 {
		t.Errorf("Expected 1 arg and 2 params, got %d and %d", sig.NumArgs(), sig.NumParams())
	}
}

func TestNewSignatureRejects(t *testing.T) {
	tests := []struct {
		name   string
		fnName string
		args   []string
		params []string
	}{
		{"empty function name", "", []string{"x"}, []string{"a"}},
		{"no arguments", "f", nil, []string{"a"}},
		{"no parameters", "f", []string{"x"}, nil},
		{"duplicate across args and params", "f", []string{"x"}, []string{"x"}},
		{"duplicate params", "f", []string{"x"}, []string{"a", "a"}},
		{"leading underscore", "f", []string{"x"}, []string{"_a"}},
		{"name with spaces", "f", []string{"x"}, []string{"a b"}},
		{"numeric name", "f", []string{"x"}, []string{"1a"}},
		{"malformed default", "f", []string{"x"}, []string{"a=abc"}},
		{"bad function name", "my func", []string{"x"}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSignature(tt.fnName, tt.args, tt.params)
			if !errors.Is(err, ErrSignature) {
				t.Errorf("Expected ErrSignature, got %v", err)
			}
		})
	}
}

func TestSignatureDefaults(t *testing.T) {
	sig, err := NewSignature("gaussian", []string{"x"}, []string{"amp", "mu", "sigma=1.5"})
	if err != nil {
		t.Fatalf("NewSignature failed: %v", err)
	}

	if v, ok := sig.Default("sigma"); !ok || v != 1.5 {
		t.Errorf("Expected default sigma=1.5, got %v, %v", v, ok)
	}
	if _, ok := sig.Default("amp"); ok {
		t.Error("amp should have no default")
	}

	// The default marker must not leak into the parameter name.
	params := sig.Params()
	if params[2] != "sigma" {
		t.Errorf("Expected parameter name sigma, got %q", params[2])
	}
}

func TestSignatureDefaultWithSpaces(t *testing.T) {
	sig, err := NewSignature("f", []string{"x"}, []string{"a = 2.5"})
	if err != nil {
		t.Fatalf("NewSignature failed: %v", err)
	}
	if v, ok := sig.Default("a"); !ok || v != 2.5 {
		t.Errorf("Expected default a=2.5, got %v, %v", v, ok)
	}
}

func TestSignatureString(t *testing.T) {
	sig, err := NewSignature("plane", []string{"x", "y"}, []string{"a", "b", "c=0"})
	if err != nil {
		t.Fatalf("NewSignature failed: %v", err)
	}
	want := "plane(x, y; a, b, c)"
	if got := sig.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSignatureAccessorsCopy(t *testing.T) {
	sig, err := NewSignature("f", []string{"x"}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewSignature failed: %v", err)
	}

	args := sig.Args()
	args[0] = "mutated"
	if sig.Args()[0] != "x" {
		t.Error("Args should return a copy")
	}

	params := sig.Params()
	params[0] = "mutated"
	if sig.Params()[0] != "a" {
		t.Error("Params should return a copy")
	}
}
