package crown

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Cell is a raster position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Bounds is an inclusive bounding box in raster coordinates.
type Bounds struct {
	MinRow int `json:"min_row"`
	MinCol int `json:"min_col"`
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`
}

// Summary describes one labeled crown.
type Summary struct {
	Label      int     `json:"label"`
	Area       int     `json:"area"`        // pixel count
	Apex       Cell    `json:"apex"`        // first highest pixel in row-major order
	MaxHeight  float64 `json:"max_height"`  // value at Apex
	MeanHeight float64 `json:"mean_height"` // mean over all crown pixels
	Bounds     Bounds  `json:"bounds"`
}

// Summarize computes per-crown statistics from a labeling result and the
// values it was computed from. Summaries are ordered by label. A label whose
// pixels were all relabeled later in the run has no summary.
func Summarize(values []float64, res *Result) ([]Summary, error) {
	if len(values) != len(res.Labels) {
		return nil, fmt.Errorf("%w: %d values for %d labels", ErrGridSize, len(values), len(res.Labels))
	}

	heights := make([][]float64, res.Count+1)
	sums := make([]Summary, res.Count)
	for idx, label := range res.Labels {
		if label == 0 {
			continue
		}
		row, col := idx/res.Width, idx%res.Width
		v := values[idx]
		s := &sums[label-1]
		if s.Area == 0 {
			*s = Summary{
				Label:     label,
				Apex:      Cell{Row: row, Col: col},
				MaxHeight: v,
				Bounds:    Bounds{MinRow: row, MinCol: col, MaxRow: row, MaxCol: col},
			}
		} else {
			if v > s.MaxHeight {
				s.MaxHeight = v
				s.Apex = Cell{Row: row, Col: col}
			}
			s.Bounds.MinRow = min(s.Bounds.MinRow, row)
			s.Bounds.MinCol = min(s.Bounds.MinCol, col)
			s.Bounds.MaxRow = max(s.Bounds.MaxRow, row)
			s.Bounds.MaxCol = max(s.Bounds.MaxCol, col)
		}
		s.Area++
		heights[label] = append(heights[label], v)
	}

	out := sums[:0]
	for _, s := range sums {
		if s.Area == 0 {
			continue
		}
		s.MeanHeight = stat.Mean(heights[s.Label], nil)
		out = append(out, s)
	}
	return out, nil
}
