package frame

import "fmt"

// seriesOps builds the default Series operation table.
func seriesOps() map[string]Op {
	return map[string]Op{
		"head":        seriesHead,
		"tail":        seriesTail,
		"dropna":      seriesDropna,
		"sort_values": seriesSortValues,
		"unique":      seriesUnique,
		"copy":        seriesCopy,
	}
}

func asSeries(c Container) (*Series, error) {
	s, ok := c.(*Series)
	if !ok {
		return nil, fmt.Errorf("expected series target, got %s", c.Kind())
	}
	return s, nil
}

func (s *Series) selectValues(indices []int) *Series {
	values := make([]interface{}, len(indices))
	for i, idx := range indices {
		values[i] = s.col.Values[idx]
	}
	return &Series{col: &Column{Name: s.col.Name, Dtype: s.col.Dtype, Values: values}}
}

func seriesHead(c Container, args []interface{}) (Container, error) {
	s, err := asSeries(c)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 0, "head")
	if err != nil {
		return nil, err
	}
	return s.selectValues(headIndices(s.Len(), n)), nil
}

func seriesTail(c Container, args []interface{}) (Container, error) {
	s, err := asSeries(c)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 0, "tail")
	if err != nil {
		return nil, err
	}
	return s.selectValues(tailIndices(s.Len(), n)), nil
}

func seriesDropna(c Container, args []interface{}) (Container, error) {
	s, err := asSeries(c)
	if err != nil {
		return nil, err
	}
	var keep []int
	for i, v := range s.col.Values {
		if v != nil {
			keep = append(keep, i)
		}
	}
	return s.selectValues(keep), nil
}

// seriesSortValues orders the series values. Arguments: ascending flag,
// inplace flag. With inplace=true the live series is reordered and a nil
// container is returned.
func seriesSortValues(c Container, args []interface{}) (Container, error) {
	s, err := asSeries(c)
	if err != nil {
		return nil, err
	}
	ascending, err := boolArg(args, 0, "sort_values")
	if err != nil {
		return nil, err
	}
	inplace, err := boolArg(args, 1, "sort_values")
	if err != nil {
		return nil, err
	}
	perm := sortedIndices(s.col, ascending)
	if !inplace {
		return s.selectValues(perm), nil
	}
	reordered := make([]interface{}, len(perm))
	for i, idx := range perm {
		reordered[i] = s.col.Values[idx]
	}
	s.col.Values = reordered
	return nil, nil
}

// seriesUnique keeps the first occurrence of each distinct value,
// preserving encounter order. Missing values collapse to one entry.
func seriesUnique(c Container, args []interface{}) (Container, error) {
	s, err := asSeries(c)
	if err != nil {
		return nil, err
	}
	seen := make(map[interface{}]bool, s.Len())
	seenNil := false
	var keep []int
	for i, v := range s.col.Values {
		if v == nil {
			if !seenNil {
				seenNil = true
				keep = append(keep, i)
			}
			continue
		}
		if !seen[v] {
			seen[v] = true
			keep = append(keep, i)
		}
	}
	return s.selectValues(keep), nil
}

func seriesCopy(c Container, args []interface{}) (Container, error) {
	s, err := asSeries(c)
	if err != nil {
		return nil, err
	}
	return s.DeepCopy(), nil
}

// Typed Series methods, routed through the dispatch table like their
// Frame counterparts.

func (s *Series) Head(n int) (*Series, error) {
	return s.seriesCall("head", n)
}

func (s *Series) Tail(n int) (*Series, error) {
	return s.seriesCall("tail", n)
}

func (s *Series) Dropna() (*Series, error) {
	return s.seriesCall("dropna")
}

func (s *Series) SortValues(ascending, inplace bool) (*Series, error) {
	return s.seriesCall("sort_values", ascending, inplace)
}

func (s *Series) Unique() (*Series, error) {
	return s.seriesCall("unique")
}

func (s *Series) Copy() (*Series, error) {
	return s.seriesCall("copy")
}

func (s *Series) seriesCall(name string, args ...interface{}) (*Series, error) {
	out, err := call(s, name, args...)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return s, nil
	}
	result, ok := out.(*Series)
	if !ok {
		return nil, fmt.Errorf("%s returned %s, expected series", name, out.Kind())
	}
	return result, nil
}
