package mapping

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

// Table errors.
var (
	ErrEmptyName       = errors.New("mapping: empty symbol name")
	ErrInvalidRange    = errors.New("mapping: min is greater than max")
	ErrOverlappingName = errors.New("mapping: overlapping declarations")
	ErrEmptyTimeline   = errors.New("mapping: no timeline entries")
)

//go:embed mappings.json
var defaultTable []byte

// Table is an ordered list of symbol mappings as read from a mapping file.
type Table []Mapping

// Parse decodes a JSON mapping table and validates it.
func Parse(data []byte) (Table, error) {
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("mapping: decode table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Default returns the built-in table shipped with the package.
func Default() Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("mapping: built-in table is invalid: %v", err))
	}
	return t
}

// DefaultJSON returns a copy of the raw built-in table.
func DefaultJSON() []byte {
	return append([]byte(nil), defaultTable...)
}

// Validate checks each record and rejects names declared by records whose
// version ranges overlap, since resolution would then be ambiguous.
func (t Table) Validate() error {
	seen := make(map[string][]Mapping, len(t))
	for i, m := range t {
		if m.Name == "" {
			return fmt.Errorf("%w (record %d)", ErrEmptyName, i)
		}
		if m.Min > m.Max {
			return fmt.Errorf("%w: %s [%d, %d]", ErrInvalidRange, m.Name, m.Min, m.Max)
		}
		if len(m.Mappings) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyTimeline, m.Name)
		}
		for _, prev := range seen[m.Name] {
			if m.Min <= prev.Max && prev.Min <= m.Max {
				return fmt.Errorf("%w: %s", ErrOverlappingName, m.Name)
			}
		}
		seen[m.Name] = append(seen[m.Name], m)
	}
	return nil
}

// Merge returns a table holding every record of t, with the records of
// other replacing any record of t that declares the same name.
func (t Table) Merge(other Table) Table {
	replaced := make(map[string]bool, len(other))
	for _, m := range other {
		replaced[m.Name] = true
	}
	out := make(Table, 0, len(t)+len(other))
	for _, m := range t {
		if !replaced[m.Name] {
			out = append(out, m)
		}
	}
	return append(out, other...)
}
