package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameQuery(t *testing.T) {
	f := testFrame(t)

	tests := []struct {
		name      string
		expr      string
		wantIDs   []interface{}
		expectErr string
	}{
		{
			name:    "numeric greater-than",
			expr:    "id > 2",
			wantIDs: []interface{}{int64(3), int64(4)},
		},
		{
			name:    "string equality",
			expr:    "name == bob",
			wantIDs: []interface{}{int64(2)},
		},
		{
			name:    "float less-or-equal",
			expr:    "score <= 2.5",
			wantIDs: []interface{}{int64(1), int64(2)},
		},
		{
			name:    "missing values never match",
			expr:    "name != bob",
			wantIDs: []interface{}{int64(1), int64(4)},
		},
		{
			name:      "unknown column",
			expr:      "ghost == 1",
			expectErr: `no column "ghost"`,
		},
		{
			name:      "bad operator",
			expr:      "id ~= 1",
			expectErr: "unsupported operator",
		},
		{
			name:      "malformed expression",
			expr:      "id",
			expectErr: "not of the form",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.Query(tt.expr)
			if tt.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr)
				return
			}
			require.NoError(t, err)
			col, ok := out.Column("id")
			require.True(t, ok)
			assert.Equal(t, tt.wantIDs, col.Values)
		})
	}
}

func TestFrameHeadTail(t *testing.T) {
	f := testFrame(t)

	head, err := f.Head(2)
	require.NoError(t, err)
	assert.Equal(t, 2, head.Len())
	v, err := head.Value(0, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	tail, err := f.Tail(2)
	require.NoError(t, err)
	assert.Equal(t, 2, tail.Len())
	v, err = tail.Value(1, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	// Oversized n is clamped, not an error.
	all, err := f.Head(100)
	require.NoError(t, err)
	assert.Equal(t, f.Len(), all.Len())
}

func TestFrameDrop(t *testing.T) {
	f := testFrame(t)

	out, err := f.Drop("score")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, out.ColumnNames())
	assert.Equal(t, []string{"id", "name", "score"}, f.ColumnNames(), "source unchanged")

	_, err = f.Drop("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no column "ghost"`)
}

func TestFrameDropnaFillna(t *testing.T) {
	f := testFrame(t)

	clean, err := f.Dropna()
	require.NoError(t, err)
	assert.Equal(t, 2, clean.Len(), "rows 3 and 4 both hold a missing value")

	filled, err := f.Fillna("n/a")
	require.NoError(t, err)
	assert.Equal(t, f.Len(), filled.Len())
	v, err := filled.Value(2, "name")
	require.NoError(t, err)
	assert.Equal(t, "n/a", v)

	// Source keeps its missing values.
	v, err = f.Value(2, "name")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFrameAssign(t *testing.T) {
	f := testFrame(t)

	broadcast, err := f.Assign("region", "eu")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "score", "region"}, broadcast.ColumnNames())
	v, err := broadcast.Value(3, "region")
	require.NoError(t, err)
	assert.Equal(t, "eu", v)

	perRow, err := f.Assign("rank", []interface{}{int64(4), int64(3), int64(2), int64(1)})
	require.NoError(t, err)
	col, ok := perRow.Column("rank")
	require.True(t, ok)
	assert.Equal(t, DtypeInt, col.Dtype)

	_, err = f.Assign("rank", []interface{}{int64(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 values for 4 rows")
}

func TestFrameSelect(t *testing.T) {
	f := testFrame(t)

	out, err := f.Select("score", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"score", "id"}, out.ColumnNames())

	_, err = f.Select("ghost")
	require.Error(t, err)
}

func TestFrameSortValues(t *testing.T) {
	f := testFrame(t)

	sorted, err := f.SortValues("score", false, false)
	require.NoError(t, err)
	v, err := sorted.Value(0, "score")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
	// Missing values sort last regardless of direction.
	v, err = sorted.Value(3, "score")
	require.NoError(t, err)
	assert.Nil(t, v)
	// Non-inplace sort leaves the source alone.
	v, err = f.Value(0, "score")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestFrameSortValuesInplace(t *testing.T) {
	f := testFrame(t)

	out, err := f.SortValues("id", false, true)
	require.NoError(t, err)
	assert.Same(t, f, out, "in-place sort returns the receiver")

	v, err := f.Value(0, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)
	v, err = f.Value(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "dave", v, "all columns reordered together")
}

func TestFrameSample(t *testing.T) {
	f := testFrame(t)

	a, err := f.Sample(2, 7)
	require.NoError(t, err)
	b, err := f.Sample(2, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())

	colA, _ := a.Column("id")
	colB, _ := b.Column("id")
	assert.Equal(t, colA.Values, colB.Values, "same seed, same sample")

	_, err = f.Sample(10, 7)
	require.Error(t, err)
}

func TestSeriesOps(t *testing.T) {
	s := NewSeries("score", DtypeInt, []interface{}{int64(3), int64(1), nil, int64(3), int64(2)})

	head, err := s.Head(2)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(3), int64(1)}, head.Values())

	clean, err := s.Dropna()
	require.NoError(t, err)
	assert.Equal(t, 4, clean.Len())

	uniq, err := s.Unique()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(3), int64(1), nil, int64(2)}, uniq.Values())

	sorted, err := s.SortValues(true, false)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3), int64(3), nil}, sorted.Values())
	assert.Equal(t, int64(3), s.Value(0), "non-inplace sort leaves the source alone")

	out, err := s.SortValues(true, true)
	require.NoError(t, err)
	assert.Same(t, s, out)
	assert.Equal(t, int64(1), s.Value(0))
}

func TestApplyDispatch(t *testing.T) {
	f := testFrame(t)

	out, err := Apply(f, "head", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())

	// In-place results are normalized to the live container.
	out, err = Apply(f, "sort_values", "id", true, true)
	require.NoError(t, err)
	assert.Same(t, f, out)

	_, err = Apply(f, "pivot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown frame operation "pivot"`)
}

func TestReplaceRejectsUnknownOp(t *testing.T) {
	_, err := Replace(KindFrame, "pivot", func(c Container, args []interface{}) (Container, error) {
		return c, nil
	})
	require.Error(t, err)
}

func TestOperationNames(t *testing.T) {
	names := OperationNames(KindFrame)
	assert.Contains(t, names, "query")
	assert.Contains(t, names, "sort_values")
	assert.True(t, KnownOp(KindSeries, "unique"))
	assert.False(t, KnownOp(KindSeries, "query"))
}
