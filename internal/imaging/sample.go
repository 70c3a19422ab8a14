package imaging

import "fmt"

// ValueResult is a raster value at a pixel.
type ValueResult struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Value float64 `json:"value"`
}

// SampleValue returns the raster value at (x, y).
//
// Coordinates are 0-based from the top-left corner of the raster.
func SampleValue(r *Raster, x, y int) (*ValueResult, error) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return nil, fmt.Errorf("coordinates (%d,%d) outside raster bounds %dx%d", x, y, r.Width, r.Height)
	}
	return &ValueResult{X: x, Y: y, Value: r.At(x, y)}, nil
}
