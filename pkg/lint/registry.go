package lint

import (
	"cmp"
	"maps"
	"slices"
	"sync"
)

// Registry holds all registered lint rules, indexed by ID and by name.
type Registry struct {
	mu      sync.RWMutex      // guards the three maps
	rules   map[string]Rule   // keyed by canonical ID
	names   map[string]Rule   // keyed by rule name
	aliases map[string]string // alternate key -> canonical ID
}

// NewRegistry returns a registry with no rules attached.
func NewRegistry() *Registry {
	return &Registry{
		rules:   map[string]Rule{},
		names:   map[string]Rule{},
		aliases: map[string]string{},
	}
}

// Register adds a rule, replacing any rule already registered under the
// same ID.
func (reg *Registry) Register(rule Rule) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.rules[rule.ID()] = rule
	reg.names[rule.Name()] = rule
}

// RegisterAlias maps an alternate spelling to a canonical rule ID, keeping
// older rule names working (e.g. "content-type" -> "AD001").
func (reg *Registry) RegisterAlias(alias, ruleID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.aliases[alias] = ruleID
}

// lookup finds a rule by ID or name. Callers must hold the lock.
func (reg *Registry) lookup(key string) (Rule, bool) {
	if ru, ok := reg.rules[key]; ok {
		return ru, true
	}
	ru, ok := reg.names[key]
	return ru, ok
}

// Get retrieves a rule by ID or name. Aliases are not consulted; use
// Resolve for user-supplied keys.
func (reg *Registry) Get(key string) (Rule, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.lookup(key)
}

// GetByID looks up a rule strictly by ID.
func (reg *Registry) GetByID(id string) (Rule, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	ru, ok := reg.rules[id]
	return ru, ok
}

// GetByName looks up a rule strictly by name.
func (reg *Registry) GetByName(name string) (Rule, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	ru, ok := reg.names[name]
	return ru, ok
}

// Resolve maps a rule ID, name, or alias to its canonical ID and rule.
func (reg *Registry) Resolve(key string) (string, Rule, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	ru, ok := reg.lookup(key)
	if !ok {
		if target, aliased := reg.aliases[key]; aliased {
			ru, ok = reg.rules[target]
		}
	}
	if !ok {
		return "", nil, false
	}
	return ru.ID(), ru, true
}

// Rules returns all registered rules sorted by ID.
func (reg *Registry) Rules() []Rule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return sortedByID(slices.Collect(maps.Values(reg.rules)))
}

// RulesByTag returns the registered rules carrying the given tag, sorted
// by ID.
func (reg *Registry) RulesByTag(tag string) []Rule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	var matched []Rule
	for _, ru := range reg.rules {
		if slices.Contains(ru.Tags(), tag) {
			matched = append(matched, ru)
		}
	}
	return sortedByID(matched)
}

// Tags returns all distinct tags across registered rules in sorted order.
func (reg *Registry) Tags() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, ru := range reg.rules {
		for _, tag := range ru.Tags() {
			seen[tag] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// IDs lists every registered rule ID, sorted.
func (reg *Registry) IDs() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return slices.Sorted(maps.Keys(reg.rules))
}

func sortedByID(rules []Rule) []Rule {
	slices.SortFunc(rules, func(a, b Rule) int { return cmp.Compare(a.ID(), b.ID()) })
	return rules
}

// DefaultRegistry holds the built-in rules. The rule packages attach
// themselves to it from their init functions.
//
//nolint:gochecknoglobals // registration target for rule init functions
var DefaultRegistry = NewRegistry()
