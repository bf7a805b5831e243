package data

import "sort"

// Record is an ordered mapping from column name to typed value.
// Insertion order mirrors schema declaration order; serialization
// normalizes to sorted-name order regardless.
type Record struct {
	fields map[string]Value
	names  []string
}

func NewRecord(capacity int) *Record {
	return &Record{
		fields: make(map[string]Value, capacity),
		names:  make([]string, 0, capacity),
	}
}

// Set stores a value under name. A repeated name (duplicate column in
// the source schema) overwrites the value but keeps the original
// position.
func (r *Record) Set(name string, v Value) {
	if _, exists := r.fields[name]; !exists {
		r.names = append(r.names, name)
	}
	r.fields[name] = v
}

func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Len is the number of distinct field names.
func (r *Record) Len() int {
	return len(r.names)
}

// Names returns field names in insertion order.
func (r *Record) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// SortedNames returns field names in lexicographic order, the order
// used by the serializer and by record equality in tests.
func (r *Record) SortedNames() []string {
	out := r.Names()
	sort.Strings(out)
	return out
}

// Equal compares two records field by field in sorted-name order.
// NaN fields never compare equal, per Value.Equal.
func (r *Record) Equal(o *Record) bool {
	if r.Len() != o.Len() {
		return false
	}
	for name, v := range r.fields {
		ov, ok := o.fields[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
