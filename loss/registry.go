package loss

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultName is the loss used when a fit does not select one.
const DefaultName = "chi_squared"

// Registry is a named collection of losses, safe for concurrent use.
// The package-level default registry holds the builtins; independent
// registries can be built for isolation, e.g. in tests.
type Registry struct {
	mu     sync.RWMutex
	losses map[string]Loss
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{losses: make(map[string]Loss)}
}

// Register stores l under its name, replacing any previous entry.
// Lookup is case-insensitive, so names are stored lowercased.
func (r *Registry) Register(l Loss) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.losses[strings.ToLower(l.Name())] = l
}

// Lookup returns the loss registered under name.
func (r *Registry) Lookup(name string) (Loss, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.losses[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %s)", ErrUnknown, name, strings.Join(r.names(), ", "))
	}
	return l, nil
}

// Names lists the registered loss names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.losses))
	for name := range r.losses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a loss selector into a Loss: a Loss value is returned
// as is, a string is looked up by name, and nil selects DefaultName.
func (r *Registry) Resolve(v any) (Loss, error) {
	switch l := v.(type) {
	case nil:
		return r.Lookup(DefaultName)
	case Loss:
		return l, nil
	case string:
		return r.Lookup(l)
	default:
		return nil, fmt.Errorf("%w: cannot resolve %T into a loss", ErrUnknown, v)
	}
}

var defaultRegistry = NewRegistry()

func init() {
	defaultRegistry.Register(ChiSquared)
	defaultRegistry.Register(Laplace)
	defaultRegistry.Register(Poisson)
}

// Default returns the process-wide registry preloaded with the builtin
// losses.
func Default() *Registry { return defaultRegistry }

// Register adds l to the default registry.
func Register(l Loss) { defaultRegistry.Register(l) }

// Lookup finds a loss by name in the default registry.
func Lookup(name string) (Loss, error) { return defaultRegistry.Lookup(name) }

// Names lists the default registry's losses in sorted order.
func Names() []string { return defaultRegistry.Names() }

// Resolve resolves a loss selector against the default registry.
func Resolve(v any) (Loss, error) { return defaultRegistry.Resolve(v) }
