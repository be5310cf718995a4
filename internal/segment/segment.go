package segment

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// Segment is one classified interval of the input price series, as produced
// by the upstream segmenter. Values are trusted verbatim: PctChange is not
// recomputed from the prices here.
type Segment struct {
	Type       string
	StartIndex int
	EndIndex   int
	StartPrice float64
	EndPrice   float64
	PctChange  float64
	StartTime  string
	EndTime    string
}

// Span returns the index span of the segment, clamped to at least 1 so a
// malformed range still renders with a minimal footprint.
func (s Segment) Span() int {
	n := s.EndIndex - s.StartIndex
	if n < 1 {
		return 1
	}
	return n
}

// Describe formats the hover text shown for the segment's rung.
func (s Segment) Describe() string {
	return fmt.Sprintf("%s | bars %d-%d | %.2f -> %.2f | %+.2f%% | len %d | %s - %s",
		s.Type, s.StartIndex, s.EndIndex, s.StartPrice, s.EndPrice, s.PctChange,
		s.Span(), s.StartTime, s.EndTime)
}

// rawSegment mirrors the segmenter's JSON layout. Pointer fields distinguish
// "absent" from zero values; extra fields in the payload (segment_id,
// columns, data, ...) are ignored by the decoder.
type rawSegment struct {
	Type       *string  `json:"segment_type"`
	StartIndex *int     `json:"start_index"`
	EndIndex   *int     `json:"end_index"`
	StartPrice *float64 `json:"start_price"`
	EndPrice   *float64 `json:"end_price"`
	PctChange  *float64 `json:"pct_change"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
}

func (r rawSegment) complete() bool {
	return r.Type != nil && r.StartIndex != nil && r.EndIndex != nil &&
		r.StartPrice != nil && r.EndPrice != nil && r.PctChange != nil
}

// Parse decodes a segment payload and filters it element-wise, keeping only
// records with all required fields present. Order is preserved and duplicates
// are kept (dedup is an upstream concern). A payload that is not an ordered
// array yields an empty result and a non-nil error; an empty array is a
// normal, renderable zero-segment state.
func Parse(data []byte, log zerolog.Logger) ([]Segment, error) {
	var raws []rawSegment
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("segment payload is not an ordered array of records: %w", err)
	}

	segs := make([]Segment, 0, len(raws))
	dropped := 0
	for _, r := range raws {
		if !r.complete() {
			dropped++
			continue
		}
		segs = append(segs, Segment{
			Type:       *r.Type,
			StartIndex: *r.StartIndex,
			EndIndex:   *r.EndIndex,
			StartPrice: *r.StartPrice,
			EndPrice:   *r.EndPrice,
			PctChange:  *r.PctChange,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
		})
	}
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Int("kept", len(segs)).
			Msg("dropped segments with missing fields")
	}
	return segs, nil
}

// FilterByType returns the segments whose type matches exactly, preserving
// input order. The sentinel value "all" selects everything and returns the
// input slice unchanged.
func FilterByType(segs []Segment, typ string) []Segment {
	if typ == "all" {
		return segs
	}
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.Type == typ {
			out = append(out, s)
		}
	}
	return out
}
