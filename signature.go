package curvefit

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Signature is the immutable calling convention of a model function:
// the ordered positional arguments (independent variables) and the
// ordered named parameters that can be fitted. A parameter declaration
// may carry a default initial guess using "name=value" syntax, for
// example "sigma=1".
type Signature struct {
	name     string
	args     []string
	params   []string
	defaults map[string]float64
}

// NewSignature validates the declaration and builds a Signature.
// Models need at least one argument and at least one parameter, and
// every name must be a unique identifier.
func NewSignature(name string, args, params []string) (Signature, error) {
	if name == "" {
		return Signature{}, fmt.Errorf("%w: function name is empty", ErrSignature)
	}
	if !validIdent(name) {
		return Signature{}, fmt.Errorf("%w: function name %q is not an identifier", ErrSignature, name)
	}
	if len(args) == 0 {
		return Signature{}, fmt.Errorf("%w: function %s declares no arguments; at least one independent variable is required", ErrSignature, name)
	}
	if len(params) == 0 {
		return Signature{}, fmt.Errorf("%w: function %s declares no parameters; there is nothing to fit", ErrSignature, name)
	}

	sig := Signature{
		name:     name,
		args:     make([]string, 0, len(args)),
		params:   make([]string, 0, len(params)),
		defaults: make(map[string]float64),
	}
	seen := make(map[string]bool, len(args)+len(params))

	for _, a := range args {
		if !validIdent(a) {
			return Signature{}, fmt.Errorf("%w: argument name %q is not an identifier", ErrSignature, a)
		}
		if seen[a] {
			return Signature{}, fmt.Errorf("%w: duplicate name %q", ErrSignature, a)
		}
		seen[a] = true
		sig.args = append(sig.args, a)
	}

	for _, p := range params {
		name, def, hasDef, err := parseParamDecl(p)
		if err != nil {
			return Signature{}, err
		}
		if seen[name] {
			return Signature{}, fmt.Errorf("%w: duplicate name %q", ErrSignature, name)
		}
		seen[name] = true
		sig.params = append(sig.params, name)
		if hasDef {
			sig.defaults[name] = def
		}
	}
	return sig, nil
}

// parseParamDecl splits an optional "name=value" default off a
// parameter declaration.
func parseParamDecl(decl string) (name string, def float64, hasDef bool, err error) {
	name, value, found := strings.Cut(decl, "=")
	name = strings.TrimSpace(name)
	if !validIdent(name) {
		return "", 0, false, fmt.Errorf("%w: parameter name %q is not an identifier", ErrSignature, name)
	}
	if !found {
		return name, 0, false, nil
	}
	def, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", 0, false, fmt.Errorf("%w: parameter %q has a malformed default %q", ErrSignature, name, value)
	}
	return name, def, true, nil
}

// validIdent reports whether s is usable as a function, argument or
// parameter name. Leading underscores are reserved.
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

// Name returns the declared function name.
func (s Signature) Name() string { return s.name }

// Args returns the positional argument names in declared order.
func (s Signature) Args() []string {
	return append([]string(nil), s.args...)
}

// Params returns the parameter names in declared order, without any
// default markers.
func (s Signature) Params() []string {
	return append([]string(nil), s.params...)
}

// NumArgs returns the number of positional arguments.
func (s Signature) NumArgs() int { return len(s.args) }

// NumParams returns the number of declared parameters.
func (s Signature) NumParams() int { return len(s.params) }

// Default returns the declared default initial guess for a parameter.
func (s Signature) Default(name string) (float64, bool) {
	v, ok := s.defaults[name]
	return v, ok
}

// paramIndex returns the declared position of a parameter, or -1.
func (s Signature) paramIndex(name string) int {
	for i, p := range s.params {
		if p == name {
			return i
		}
	}
	return -1
}

// String renders the declaration, e.g. "linear(x; a, b)".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteByte('(')
	b.WriteString(strings.Join(s.args, ", "))
	b.WriteString("; ")
	b.WriteString(strings.Join(s.params, ", "))
	b.WriteByte(')')
	return b.String()
}
