package mapping

import (
	"sort"

	"github.com/vango-dev/particlewire/pkg/protocol"
)

// Entry is one step of a symbol's timeline: from version From on, the
// symbol resolves to Value until a later entry takes over.
type Entry struct {
	From  protocol.Version `json:"from"`
	Value string           `json:"value"`
}

// Mapping declares a logical symbol and the versions it exists in.
type Mapping struct {
	Name     string           `json:"name"`
	Min      protocol.Version `json:"min"`
	Max      protocol.Version `json:"max"`
	Mappings []Entry          `json:"mappings"`
}

// Applies reports whether v falls inside the mapping's [Min, Max] range.
func (m Mapping) Applies(v protocol.Version) bool {
	return v >= m.Min && v <= m.Max
}

// Resolve picks the entry with the greatest From that is not after v.
// Entry order in the timeline does not matter.
func (m Mapping) Resolve(v protocol.Version) (string, bool) {
	if !m.Applies(v) {
		return "", false
	}
	var (
		best  string
		from  protocol.Version
		found bool
	)
	for _, e := range m.Mappings {
		if e.From > v {
			continue
		}
		if !found || e.From > from {
			best, from, found = e.Value, e.From, true
		}
	}
	return best, found
}

// Registry is the resolved name → value table for one version.
// It is immutable after Load and safe for concurrent use.
type Registry struct {
	version protocol.Version
	values  map[string]string
}

// Load resolves every mapping in the table against v. Symbols that do not
// exist at v are simply absent from the result. A name may be declared by
// several records with disjoint ranges; the one covering v is used.
func Load(table Table, v protocol.Version) *Registry {
	values := make(map[string]string, len(table))
	for _, m := range table {
		value, ok := m.Resolve(v)
		if !ok {
			continue
		}
		values[m.Name] = value
	}
	return &Registry{version: v, values: values}
}

// Resolve returns the value bound to name at the registry's version.
func (r *Registry) Resolve(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Version returns the version the registry was resolved for.
func (r *Registry) Version() protocol.Version {
	return r.version
}

// Len returns the number of resolved symbols.
func (r *Registry) Len() int {
	return len(r.values)
}

// Names returns the resolved symbol names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
