package segment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a loaded dataset for the HUD and UI panels.
type Stats struct {
	TotalSegments int
	TypeCounts    map[string]int
	Volatility    string
}

// Compute returns summary statistics for the dataset, or nil when there is
// no data. Volatility is the mean absolute percent change, formatted for
// display.
func Compute(segs []Segment) *Stats {
	if len(segs) == 0 {
		return nil
	}
	abs := make([]float64, len(segs))
	counts := make(map[string]int, 4)
	for i, s := range segs {
		abs[i] = math.Abs(s.PctChange)
		counts[s.Type]++
	}
	return &Stats{
		TotalSegments: len(segs),
		TypeCounts:    counts,
		Volatility:    fmt.Sprintf("%.2f%%", stat.Mean(abs, nil)),
	}
}
