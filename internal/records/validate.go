package records

import "sort"

// FieldSet is a set of sheet field names.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from names.
func NewFieldSet(names ...string) FieldSet {
	s := make(FieldSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Names returns the set members in sorted order.
func (s FieldSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// IsRecordValid reports whether every required field is present in r and marked valid.
func IsRecordValid(r Record, required FieldSet) bool {
	for name := range required {
		f, ok := r.Values[name]
		if !ok || !f.Valid {
			return false
		}
	}
	return true
}

// InvalidFields lists the required fields that are absent or invalid, for logging.
func InvalidFields(r Record, required FieldSet) []string {
	var bad []string
	for _, name := range required.Names() {
		if f, ok := r.Values[name]; !ok || !f.Valid {
			bad = append(bad, name)
		}
	}
	return bad
}
