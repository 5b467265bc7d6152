// Package frame provides the in-memory tabular containers that framelog
// instruments: Frame (rows by named columns) and Series (a single column).
// All transformation operations route through a per-kind dispatch table so
// the trace layer can swap implementations without owning the containers.
package frame

import (
	"fmt"
	"time"

	"github.com/elliotchance/orderedmap/v2"
)

// Kind identifies which container variant an operation targets.
type Kind int

const (
	KindFrame Kind = iota
	KindSeries
)

func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindSeries:
		return "series"
	default:
		return "unknown"
	}
}

// Dtype is the element type of a column.
type Dtype int

const (
	DtypeString Dtype = iota
	DtypeInt
	DtypeFloat
	DtypeBool
	DtypeTime
)

func (d Dtype) String() string {
	switch d {
	case DtypeString:
		return "string"
	case DtypeInt:
		return "int"
	case DtypeFloat:
		return "float"
	case DtypeBool:
		return "bool"
	case DtypeTime:
		return "time"
	default:
		return "unknown"
	}
}

// Column holds one named, typed value vector. A nil element represents a
// missing value (NULL from SQL, empty cell from CSV).
type Column struct {
	Name   string
	Dtype  Dtype
	Values []interface{}
}

// clone returns an independent copy of the column.
func (c *Column) clone() *Column {
	values := make([]interface{}, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Dtype: c.Dtype, Values: values}
}

// approxBytes estimates the storage held by the column's values.
// The estimate only needs to be consistent between two snapshots of the
// same measurement, not accurate in absolute terms.
func (c *Column) approxBytes() int64 {
	var total int64
	for _, v := range c.Values {
		switch val := v.(type) {
		case nil:
			// missing value, no payload
		case string:
			total += int64(len(val)) + 16
		case time.Time:
			total += 24
		default:
			total += 8
		}
	}
	return total
}

// Container is the operable-container capability shared by Frame and
// Series. The trace layer only ever sees this interface.
type Container interface {
	Kind() Kind
	Len() int
	ColumnNames() []string
	Dtypes() map[string]Dtype
	DeepCopy() Container
	ApproxBytes() int64
}

// Frame is a row-oriented table with insertion-ordered named columns.
type Frame struct {
	cols *orderedmap.OrderedMap[string, *Column]
	rows int
}

// NewFrame builds a Frame from the given columns. Column order is
// preserved. All columns must have the same length and unique names.
func NewFrame(columns ...*Column) (*Frame, error) {
	f := &Frame{cols: orderedmap.NewOrderedMap[string, *Column]()}
	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if _, exists := f.cols.Get(col.Name); exists {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		if i == 0 {
			f.rows = len(col.Values)
		} else if len(col.Values) != f.rows {
			return nil, fmt.Errorf("column %q has %d values, expected %d",
				col.Name, len(col.Values), f.rows)
		}
		f.cols.Set(col.Name, col)
	}
	return f, nil
}

// MustFrame is NewFrame that panics on error. Intended for tests and
// static literals.
func MustFrame(columns ...*Column) *Frame {
	f, err := NewFrame(columns...)
	if err != nil {
		panic(err)
	}
	return f
}

// Kind reports the container variant tag.
func (f *Frame) Kind() Kind { return KindFrame }

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// ColumnNames returns the column names in insertion order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, 0, f.cols.Len())
	for el := f.cols.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

// Dtypes returns the dtype of every column keyed by name.
func (f *Frame) Dtypes() map[string]Dtype {
	dtypes := make(map[string]Dtype, f.cols.Len())
	for el := f.cols.Front(); el != nil; el = el.Next() {
		dtypes[el.Key] = el.Value.Dtype
	}
	return dtypes
}

// Column returns the named column, or false if it does not exist.
func (f *Frame) Column(name string) (*Column, bool) {
	return f.cols.Get(name)
}

// Value returns the cell at (row, column).
func (f *Frame) Value(row int, column string) (interface{}, error) {
	col, ok := f.cols.Get(column)
	if !ok {
		return nil, fmt.Errorf("no column %q", column)
	}
	if row < 0 || row >= f.rows {
		return nil, fmt.Errorf("row %d out of range (%d rows)", row, f.rows)
	}
	return col.Values[row], nil
}

// DeepCopy returns a fully independent copy of the frame.
func (f *Frame) DeepCopy() Container {
	out := &Frame{cols: orderedmap.NewOrderedMap[string, *Column](), rows: f.rows}
	for el := f.cols.Front(); el != nil; el = el.Next() {
		out.cols.Set(el.Key, el.Value.clone())
	}
	return out
}

// ApproxBytes estimates the memory held by the frame's column storage.
func (f *Frame) ApproxBytes() int64 {
	var total int64
	for el := f.cols.Front(); el != nil; el = el.Next() {
		total += el.Value.approxBytes() + int64(len(el.Key))
	}
	return total
}

// selectRows builds a new frame containing the given row indices, in the
// given order.
func (f *Frame) selectRows(indices []int) *Frame {
	out := &Frame{cols: orderedmap.NewOrderedMap[string, *Column](), rows: len(indices)}
	for el := f.cols.Front(); el != nil; el = el.Next() {
		values := make([]interface{}, len(indices))
		for i, idx := range indices {
			values[i] = el.Value.Values[idx]
		}
		out.cols.Set(el.Key, &Column{Name: el.Value.Name, Dtype: el.Value.Dtype, Values: values})
	}
	return out
}

// columns returns the column pointers in insertion order.
func (f *Frame) columns() []*Column {
	cols := make([]*Column, 0, f.cols.Len())
	for el := f.cols.Front(); el != nil; el = el.Next() {
		cols = append(cols, el.Value)
	}
	return cols
}
