package frame

// Series is a single named, typed column of values.
type Series struct {
	col *Column
}

// NewSeries builds a Series from a name, dtype, and values.
func NewSeries(name string, dtype Dtype, values []interface{}) *Series {
	owned := make([]interface{}, len(values))
	copy(owned, values)
	return &Series{col: &Column{Name: name, Dtype: dtype, Values: owned}}
}

// Kind reports the container variant tag.
func (s *Series) Kind() Kind { return KindSeries }

// Len returns the number of values.
func (s *Series) Len() int { return len(s.col.Values) }

// Name returns the series name.
func (s *Series) Name() string { return s.col.Name }

// Dtype returns the element type.
func (s *Series) Dtype() Dtype { return s.col.Dtype }

// ColumnNames returns the single column identifier.
func (s *Series) ColumnNames() []string { return []string{s.col.Name} }

// Dtypes returns the dtype keyed by the series name.
func (s *Series) Dtypes() map[string]Dtype {
	return map[string]Dtype{s.col.Name: s.col.Dtype}
}

// Values returns the underlying value slice. Callers must not mutate it.
func (s *Series) Values() []interface{} { return s.col.Values }

// Value returns the element at index i.
func (s *Series) Value(i int) interface{} { return s.col.Values[i] }

// DeepCopy returns a fully independent copy of the series.
func (s *Series) DeepCopy() Container {
	return &Series{col: s.col.clone()}
}

// ApproxBytes estimates the memory held by the series values.
func (s *Series) ApproxBytes() int64 {
	return s.col.approxBytes() + int64(len(s.col.Name))
}
