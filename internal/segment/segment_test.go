package segment

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(typ string, start, end int, pct float64) map[string]any {
	return map[string]any{
		"segment_type": typ,
		"start_index":  start,
		"end_index":    end,
		"start_time":   "2024-01-01 00:00:00",
		"end_time":     "2024-01-01 04:00:00",
		"start_price":  100.0,
		"end_price":    100.0 * (1 + pct/100),
		"pct_change":   pct,
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestParse_EmptyArray(t *testing.T) {
	segs, err := Parse([]byte(`[]`), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestParse_NonArrayPayload(t *testing.T) {
	for _, payload := range []string{`{}`, `"segments"`, `42`, `not json at all`} {
		segs, err := Parse([]byte(payload), zerolog.Nop())
		assert.Error(t, err, "payload %q", payload)
		assert.Empty(t, segs, "payload %q", payload)
	}
}

func TestParse_DropsIncompleteRecordsPreservingOrder(t *testing.T) {
	records := make([]map[string]any, 0, 10)
	for i := 0; i < 10; i++ {
		r := record("optimal", i*10, i*10+5, 2.5)
		if i == 2 || i == 5 || i == 8 {
			delete(r, "pct_change")
		}
		records = append(records, r)
	}

	segs, err := Parse(mustMarshal(t, records), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, segs, 7)

	wantStarts := []int{0, 10, 30, 40, 60, 70, 90}
	for i, s := range segs {
		assert.Equal(t, wantStarts[i], s.StartIndex)
	}
}

func TestParse_IgnoresExtraFields(t *testing.T) {
	r := record("negative", 5, 12, -3.1)
	r["segment_id"] = 7
	r["segment_length"] = 8
	r["columns"] = []string{"snr", "cycle_stage"}
	r["data"] = [][]float64{{0.1, 0.2}}
	r["is_local_min"] = true

	segs, err := Parse(mustMarshal(t, []map[string]any{r}), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "negative", segs[0].Type)
	assert.Equal(t, 5, segs[0].StartIndex)
	assert.Equal(t, 12, segs[0].EndIndex)
	assert.InDelta(t, -3.1, segs[0].PctChange, 1e-9)
}

func TestParse_TimesAreOptional(t *testing.T) {
	r := record("optimal", 0, 4, 1.0)
	delete(r, "start_time")
	delete(r, "end_time")

	segs, err := Parse(mustMarshal(t, []map[string]any{r}), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Empty(t, segs[0].StartTime)
}

func TestFilterByType_AllIsIdentity(t *testing.T) {
	segs := []Segment{
		{Type: "optimal", StartIndex: 0},
		{Type: "negative", StartIndex: 5},
		{Type: "optimal", StartIndex: 9},
	}
	got := FilterByType(segs, "all")
	assert.Equal(t, segs, got)
}

func TestFilterByType_ExactMatchPreservesOrder(t *testing.T) {
	segs := []Segment{
		{Type: "optimal", StartIndex: 0},
		{Type: "negative", StartIndex: 5},
		{Type: "optimal", StartIndex: 9},
		{Type: "unknown", StartIndex: 12},
	}
	got := FilterByType(segs, "optimal")
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].StartIndex)
	assert.Equal(t, 9, got[1].StartIndex)

	assert.Empty(t, FilterByType(segs, "missing"))
}

func TestSpan_ClampsToOne(t *testing.T) {
	assert.Equal(t, 10, Segment{StartIndex: 5, EndIndex: 15}.Span())
	assert.Equal(t, 1, Segment{StartIndex: 5, EndIndex: 5}.Span())
	assert.Equal(t, 1, Segment{StartIndex: 9, EndIndex: 2}.Span())
}

func TestCompute_Stats(t *testing.T) {
	segs := []Segment{
		{Type: "optimal", PctChange: 4},
		{Type: "negative", PctChange: -2},
	}
	st := Compute(segs)
	require.NotNil(t, st)
	assert.Equal(t, 2, st.TotalSegments)
	assert.Equal(t, map[string]int{"optimal": 1, "negative": 1}, st.TypeCounts)
	assert.Equal(t, "3.00%", st.Volatility)
}

func TestCompute_EmptySignalsNoData(t *testing.T) {
	assert.Nil(t, Compute(nil))
	assert.Nil(t, Compute([]Segment{}))
}
