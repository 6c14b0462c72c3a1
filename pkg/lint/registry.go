package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Factory creates a fresh rule instance holding default options.
type Factory func() Rule

type registration struct {
	factory   Factory
	prototype Rule
}

// Registry holds all registered lint rules.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]registration
	byName  map[string]string // name -> ID
	aliases map[string]string // deprecated ID -> current ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]registration),
		byName:  make(map[string]string),
		aliases: make(map[string]string),
	}
}

// Register adds a rule factory. If a rule with the same ID already exists,
// it is replaced.
func (r *Registry) Register(factory Factory) {
	proto := factory()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[proto.ID()] = registration{factory: factory, prototype: proto}
	r.byName[proto.Name()] = proto.ID()
}

// RegisterAlias maps a deprecated identifier to a current rule ID.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Get retrieves a rule prototype by ID or name. Prototypes hold default
// options and are for metadata only; use New to obtain a runnable rule.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reg, ok := r.byID[key]; ok {
		return reg.prototype, true
	}
	if id, ok := r.byName[key]; ok {
		return r.byID[id].prototype, true
	}
	return nil, false
}

// New creates a fresh instance of the rule with the given ID.
func (r *Registry) New(id string) (Rule, bool) {
	r.mu.RLock()
	reg, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return reg.factory(), true
}

// Resolve returns the canonical ID for a rule ID, name, or deprecated alias.
// renamed is true when key was a deprecated alias.
func (r *Registry) Resolve(key string) (id string, renamed bool, found bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byID[key]; ok {
		return key, false, true
	}
	if id, ok := r.byName[key]; ok {
		return id, false, true
	}
	if target, ok := r.aliases[key]; ok {
		if _, ok := r.byID[target]; ok {
			return target, true, true
		}
	}
	return "", false, false
}

// Aliases returns the deprecated identifiers of a rule, sorted.
func (r *Registry) Aliases(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for alias, target := range r.aliases {
		if target == id {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// Rules returns all registered rule prototypes sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, reg := range r.byID {
		result = append(result, reg.prototype)
	}
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}
	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
