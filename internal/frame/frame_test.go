package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := NewFrame(
		&Column{Name: "id", Dtype: DtypeInt, Values: []interface{}{int64(1), int64(2), int64(3), int64(4)}},
		&Column{Name: "name", Dtype: DtypeString, Values: []interface{}{"alice", "bob", nil, "dave"}},
		&Column{Name: "score", Dtype: DtypeFloat, Values: []interface{}{1.5, 2.5, 3.5, nil}},
	)
	require.NoError(t, err)
	return f
}

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name      string
		columns   []*Column
		expectErr string
	}{
		{
			name: "valid frame",
			columns: []*Column{
				{Name: "a", Values: []interface{}{1, 2}},
				{Name: "b", Values: []interface{}{"x", "y"}},
			},
		},
		{
			name: "mismatched lengths",
			columns: []*Column{
				{Name: "a", Values: []interface{}{1, 2}},
				{Name: "b", Values: []interface{}{"x"}},
			},
			expectErr: "expected 2",
		},
		{
			name: "duplicate column",
			columns: []*Column{
				{Name: "a", Values: []interface{}{1}},
				{Name: "a", Values: []interface{}{2}},
			},
			expectErr: "duplicate column",
		},
		{
			name: "unnamed column",
			columns: []*Column{
				{Values: []interface{}{1}},
			},
			expectErr: "no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFrame(tt.columns...)
			if tt.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, f.Len())
			assert.Equal(t, []string{"a", "b"}, f.ColumnNames())
		})
	}
}

func TestFrameDeepCopyIndependence(t *testing.T) {
	f := testFrame(t)
	cp := f.DeepCopy().(*Frame)

	col, ok := cp.Column("name")
	require.True(t, ok)
	col.Values[0] = "mallory"

	v, err := f.Value(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "alice", v, "mutating the copy must not touch the source")
}

func TestFrameColumnOrderPreserved(t *testing.T) {
	f := testFrame(t)
	assert.Equal(t, []string{"id", "name", "score"}, f.ColumnNames())

	renamed, err := f.Rename("name", "customer")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "customer", "score"}, renamed.ColumnNames())
}

func TestFrameApproxBytes(t *testing.T) {
	f := testFrame(t)
	require.Greater(t, f.ApproxBytes(), int64(0))

	bigger, err := f.Assign("extra", "some long string value")
	require.NoError(t, err)
	assert.Greater(t, bigger.ApproxBytes(), f.ApproxBytes())
}

func TestSeriesBasics(t *testing.T) {
	s := NewSeries("score", DtypeInt, []interface{}{int64(3), int64(1), nil, int64(3)})
	assert.Equal(t, KindSeries, s.Kind())
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"score"}, s.ColumnNames())
	assert.Equal(t, map[string]Dtype{"score": DtypeInt}, s.Dtypes())

	cp := s.DeepCopy().(*Series)
	cp.col.Values[0] = int64(99)
	assert.Equal(t, int64(3), s.Value(0))
}
