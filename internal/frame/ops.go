package frame

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// frameOps builds the default Frame operation table. These are the raw,
// uninstrumented implementations; the trace layer stores them aside when
// it installs wrappers.
func frameOps() map[string]Op {
	return map[string]Op{
		"query":       frameQuery,
		"head":        frameHead,
		"tail":        frameTail,
		"drop":        frameDrop,
		"dropna":      frameDropna,
		"fillna":      frameFillna,
		"rename":      frameRename,
		"assign":      frameAssign,
		"select":      frameSelect,
		"sort_values": frameSortValues,
		"sample":      frameSample,
		"copy":        frameCopy,
	}
}

func asFrame(c Container) (*Frame, error) {
	f, ok := c.(*Frame)
	if !ok {
		return nil, fmt.Errorf("expected frame target, got %s", c.Kind())
	}
	return f, nil
}

// frameQuery keeps the rows matching a "column op literal" expression.
// Supported operators: == != > >= < <=. Comparison honors the column
// dtype; rows with a missing value in the queried column never match.
func frameQuery(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	expr, err := stringArg(args, 0, "query")
	if err != nil {
		return nil, err
	}
	pred, err := parsePredicate(f, expr)
	if err != nil {
		return nil, err
	}
	var keep []int
	for i := 0; i < f.rows; i++ {
		match, err := pred(i)
		if err != nil {
			return nil, err
		}
		if match {
			keep = append(keep, i)
		}
	}
	return f.selectRows(keep), nil
}

func frameHead(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 0, "head")
	if err != nil {
		return nil, err
	}
	return f.selectRows(headIndices(f.rows, n)), nil
}

func frameTail(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 0, "tail")
	if err != nil {
		return nil, err
	}
	return f.selectRows(tailIndices(f.rows, n)), nil
}

// frameDrop removes the named columns. Dropping a column that does not
// exist is an error, matching strict column addressing everywhere else.
func frameDrop(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("drop: at least one column required")
	}
	doomed := make(map[string]bool, len(args))
	for i := range args {
		name, err := stringArg(args, i, "drop")
		if err != nil {
			return nil, err
		}
		if _, ok := f.cols.Get(name); !ok {
			return nil, fmt.Errorf("drop: no column %q", name)
		}
		doomed[name] = true
	}
	var kept []*Column
	for _, col := range f.columns() {
		if !doomed[col.Name] {
			kept = append(kept, col.clone())
		}
	}
	return NewFrame(kept...)
}

// frameDropna removes every row containing at least one missing value.
func frameDropna(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	cols := f.columns()
	var keep []int
	for i := 0; i < f.rows; i++ {
		complete := true
		for _, col := range cols {
			if col.Values[i] == nil {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}
	return f.selectRows(keep), nil
}

// frameFillna replaces every missing value with the given replacement.
func frameFillna(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	if len(args) < 1 {
		return nil, fmt.Errorf("fillna: replacement value required")
	}
	replacement := args[0]
	out := f.DeepCopy().(*Frame)
	for _, col := range out.columns() {
		for i, v := range col.Values {
			if v == nil {
				col.Values[i] = replacement
			}
		}
	}
	return out, nil
}

func frameRename(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	from, err := stringArg(args, 0, "rename")
	if err != nil {
		return nil, err
	}
	to, err := stringArg(args, 1, "rename")
	if err != nil {
		return nil, err
	}
	if _, ok := f.cols.Get(from); !ok {
		return nil, fmt.Errorf("rename: no column %q", from)
	}
	if _, ok := f.cols.Get(to); ok {
		return nil, fmt.Errorf("rename: column %q already exists", to)
	}
	var cols []*Column
	for _, col := range f.columns() {
		cl := col.clone()
		if cl.Name == from {
			cl.Name = to
		}
		cols = append(cols, cl)
	}
	return NewFrame(cols...)
}

// frameAssign adds or replaces a column. The value argument is either a
// full value slice (one element per row) or a scalar broadcast to every
// row. The dtype is inferred from the values.
func frameAssign(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	name, err := stringArg(args, 0, "assign")
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("assign: value required for column %q", name)
	}
	var values []interface{}
	if vs, ok := args[1].([]interface{}); ok {
		if len(vs) != f.rows {
			return nil, fmt.Errorf("assign: %d values for %d rows", len(vs), f.rows)
		}
		values = append(values, vs...)
	} else {
		values = make([]interface{}, f.rows)
		for i := range values {
			values[i] = args[1]
		}
	}
	newCol := &Column{Name: name, Dtype: inferDtype(values), Values: values}
	var cols []*Column
	replaced := false
	for _, col := range f.columns() {
		if col.Name == name {
			cols = append(cols, newCol)
			replaced = true
			continue
		}
		cols = append(cols, col.clone())
	}
	if !replaced {
		cols = append(cols, newCol)
	}
	return NewFrame(cols...)
}

// frameSelect projects the frame down to the named columns, in the
// requested order.
func frameSelect(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("select: at least one column required")
	}
	var cols []*Column
	for i := range args {
		name, err := stringArg(args, i, "select")
		if err != nil {
			return nil, err
		}
		col, ok := f.cols.Get(name)
		if !ok {
			return nil, fmt.Errorf("select: no column %q", name)
		}
		cols = append(cols, col.clone())
	}
	return NewFrame(cols...)
}

// frameSortValues orders rows by one column. Arguments: column name,
// ascending flag, inplace flag. Missing values sort last regardless of
// direction. With inplace=true the frame is reordered in place and a nil
// container is returned to signal the strictly in-place outcome.
func frameSortValues(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	column, err := stringArg(args, 0, "sort_values")
	if err != nil {
		return nil, err
	}
	ascending, err := boolArg(args, 1, "sort_values")
	if err != nil {
		return nil, err
	}
	inplace, err := boolArg(args, 2, "sort_values")
	if err != nil {
		return nil, err
	}
	col, ok := f.cols.Get(column)
	if !ok {
		return nil, fmt.Errorf("sort_values: no column %q", column)
	}
	perm := sortedIndices(col, ascending)
	if !inplace {
		return f.selectRows(perm), nil
	}
	for _, target := range f.columns() {
		reordered := make([]interface{}, len(perm))
		for i, idx := range perm {
			reordered[i] = target.Values[idx]
		}
		target.Values = reordered
	}
	return nil, nil
}

// frameSample picks n rows without replacement using a seeded source, so
// results are reproducible for a given seed.
func frameSample(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 0, "sample")
	if err != nil {
		return nil, err
	}
	seed, err := intArg(args, 1, "sample")
	if err != nil {
		return nil, err
	}
	if n < 0 || n > f.rows {
		return nil, fmt.Errorf("sample: cannot take %d rows from %d", n, f.rows)
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	perm := rng.Perm(f.rows)[:n]
	return f.selectRows(perm), nil
}

func frameCopy(c Container, args []interface{}) (Container, error) {
	f, err := asFrame(c)
	if err != nil {
		return nil, err
	}
	return f.DeepCopy(), nil
}

// sortedIndices returns a stable row permutation ordered by the column's
// values. Missing values always come last.
func sortedIndices(col *Column, ascending bool) []int {
	perm := make([]int, len(col.Values))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		va, vb := col.Values[perm[a]], col.Values[perm[b]]
		if va == nil {
			return false
		}
		if vb == nil {
			return true
		}
		cmp := compareValues(col.Dtype, va, vb)
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return perm
}

func headIndices(rows, n int) []int {
	if n < 0 {
		n = 0
	}
	if n > rows {
		n = rows
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func tailIndices(rows, n int) []int {
	if n < 0 {
		n = 0
	}
	if n > rows {
		n = rows
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = rows - n + i
	}
	return indices
}

// parsePredicate compiles a "column op literal" expression into a row
// predicate. The literal is coerced to the column's dtype.
func parsePredicate(f *Frame, expr string) (func(row int) (bool, error), error) {
	parts := strings.SplitN(strings.TrimSpace(expr), " ", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("query: expression %q is not of the form \"column op literal\"", expr)
	}
	column, operator, literal := parts[0], parts[1], strings.TrimSpace(parts[2])
	col, ok := f.cols.Get(column)
	if !ok {
		return nil, fmt.Errorf("query: no column %q", column)
	}
	want, err := coerceLiteral(col.Dtype, literal)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	switch operator {
	case "==", "!=", ">", ">=", "<", "<=":
	default:
		return nil, fmt.Errorf("query: unsupported operator %q", operator)
	}
	return func(row int) (bool, error) {
		v := col.Values[row]
		if v == nil {
			return false, nil
		}
		cmp := compareValues(col.Dtype, v, want)
		switch operator {
		case "==":
			return cmp == 0, nil
		case "!=":
			return cmp != 0, nil
		case ">":
			return cmp > 0, nil
		case ">=":
			return cmp >= 0, nil
		case "<":
			return cmp < 0, nil
		default: // "<="
			return cmp <= 0, nil
		}
	}, nil
}

// Typed Frame methods. Every method resolves through the dispatch table
// so an installed wrapper sees the call; a nil result from an in-place
// operation is normalized back to the receiver.

func (f *Frame) Query(expr string) (*Frame, error) {
	return f.frameCall("query", expr)
}

func (f *Frame) Head(n int) (*Frame, error) {
	return f.frameCall("head", n)
}

func (f *Frame) Tail(n int) (*Frame, error) {
	return f.frameCall("tail", n)
}

func (f *Frame) Drop(columns ...string) (*Frame, error) {
	args := make([]interface{}, len(columns))
	for i, c := range columns {
		args[i] = c
	}
	return f.frameCall("drop", args...)
}

func (f *Frame) Dropna() (*Frame, error) {
	return f.frameCall("dropna")
}

func (f *Frame) Fillna(replacement interface{}) (*Frame, error) {
	return f.frameCall("fillna", replacement)
}

func (f *Frame) Rename(from, to string) (*Frame, error) {
	return f.frameCall("rename", from, to)
}

func (f *Frame) Assign(name string, value interface{}) (*Frame, error) {
	return f.frameCall("assign", name, value)
}

func (f *Frame) Select(columns ...string) (*Frame, error) {
	args := make([]interface{}, len(columns))
	for i, c := range columns {
		args[i] = c
	}
	return f.frameCall("select", args...)
}

func (f *Frame) SortValues(column string, ascending, inplace bool) (*Frame, error) {
	return f.frameCall("sort_values", column, ascending, inplace)
}

func (f *Frame) Sample(n int, seed int64) (*Frame, error) {
	return f.frameCall("sample", n, seed)
}

func (f *Frame) Copy() (*Frame, error) {
	return f.frameCall("copy")
}

func (f *Frame) frameCall(name string, args ...interface{}) (*Frame, error) {
	out, err := call(f, name, args...)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return f, nil
	}
	result, ok := out.(*Frame)
	if !ok {
		return nil, fmt.Errorf("%s returned %s, expected frame", name, out.Kind())
	}
	return result, nil
}
