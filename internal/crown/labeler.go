package crown

import (
	"context"
	"fmt"
	"math"
)

// DefaultMaxChainDepth bounds how many shelves a single plateau discovery may
// chain through when Options.MaxChainDepth is not set.
const DefaultMaxChainDepth = 10000

// Options holds the labeling parameters.
type Options struct {
	// Cutoff is the minimum value a pixel needs to be considered foreground.
	Cutoff float64

	// LocalMaxRadius is the half-width of the window searched for a strictly
	// higher neighbor during ascent. Zero means a pixel is always its own apex.
	LocalMaxRadius int

	// PlateauRadius is the half-width of the window searched when growing a
	// plateau. Zero limits every plateau to a single pixel.
	PlateauRadius int

	// MaxChainDepth caps the number of shelf hand-offs in one plateau
	// discovery. Zero or negative selects DefaultMaxChainDepth.
	MaxChainDepth int
}

// Result is the outcome of a labeling run.
type Result struct {
	// Labels holds one label per pixel in row-major order. 0 is background.
	Labels []int

	// Width and Height are the raster dimensions.
	Width, Height int

	// Count is the number of distinct crowns, so labels range over 1..Count.
	Count int
}

// At returns the label at (row, col). It panics when the coordinate is
// outside the raster, like a slice index would.
func (r *Result) At(row, col int) int {
	return r.Labels[row*r.Width+col]
}

// Labeler detects crowns in one raster. It only reads the grid it was given.
type Labeler struct {
	values []float64
	width  int
	height int
	opts   Options
}

// NewLabeler validates the raster and parameters and returns a Labeler.
//
// values must hold exactly width*height row-major values. Rasters smaller than
// 3x3 are accepted here; Label reports them with ErrInvalidDimensions.
func NewLabeler(values []float64, width, height int, opts Options) (*Labeler, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrGridSize, len(values), width, height)
	}
	if opts.LocalMaxRadius < 0 || opts.PlateauRadius < 0 {
		return nil, fmt.Errorf("%w: local max radius %d, plateau radius %d",
			ErrNegativeRadius, opts.LocalMaxRadius, opts.PlateauRadius)
	}
	if math.IsNaN(opts.Cutoff) || math.IsInf(opts.Cutoff, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCutoff, opts.Cutoff)
	}
	if opts.MaxChainDepth <= 0 {
		opts.MaxChainDepth = DefaultMaxChainDepth
	}
	return &Labeler{values: values, width: width, height: height, opts: opts}, nil
}

// Label is a shorthand for NewLabeler followed by Labeler.Label.
func Label(ctx context.Context, values []float64, width, height int, opts Options) (*Result, error) {
	l, err := NewLabeler(values, width, height, opts)
	if err != nil {
		return nil, err
	}
	return l.Label(ctx)
}

// Options returns the effective options, with defaults applied.
func (l *Labeler) Options() Options {
	return l.opts
}

// Label runs ascent, plateau discovery and label assignment over every
// interior pixel and returns the label grid.
//
// Labels are assigned in row-major order of first discovery, so repeated runs
// over the same raster return identical grids. When the raster has no
// interior, the returned Result is all background and the error wraps
// ErrInvalidDimensions. ctx is checked between rows.
func (l *Labeler) Label(ctx context.Context) (*Result, error) {
	res := &Result{
		Labels: make([]int, l.width*l.height),
		Width:  l.width,
		Height: l.height,
	}
	if l.width < 3 || l.height < 3 {
		return res, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, l.width, l.height)
	}

	r := newRun(l)
	for i := 1; i < l.height-1; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := 1; j < l.width-1; j++ {
			if err := r.labelPixel(i*l.width+j, res.Labels); err != nil {
				return nil, err
			}
		}
	}

	res.Count = r.count
	return res, nil
}

// run is the mutable state of one Label call.
type run struct {
	*Labeler

	// memo maps a pixel to the plateau it belongs to, -1 when unknown.
	memo []int
	// plateaus is the arena of discovered plateaus, each a list of members.
	plateaus [][]int
	// labelOf maps a plateau index to its label, 0 until assigned.
	labelOf []int
	count   int

	// seen marks pixels collected by the grow call whose stamp matches.
	seen  []int
	stamp int
}

func newRun(l *Labeler) *run {
	memo := make([]int, len(l.values))
	for i := range memo {
		memo[i] = -1
	}
	return &run{
		Labeler: l,
		memo:    memo,
		seen:    make([]int, len(l.values)),
	}
}

func (r *run) labelPixel(idx int, labels []int) error {
	v, err := r.value(idx)
	if err != nil {
		return err
	}
	if v < r.opts.Cutoff {
		return nil
	}

	apex, err := r.ascend(idx)
	if err != nil {
		return err
	}
	p, err := r.discover(apex)
	if err != nil {
		return err
	}

	if r.labelOf[p] == 0 {
		r.count++
		r.labelOf[p] = r.count
		for _, m := range r.plateaus[p] {
			// Tolerance can admit members a hair under the cutoff.
			if r.values[m] >= r.opts.Cutoff {
				labels[m] = r.count
			}
		}
	}
	labels[idx] = r.labelOf[p]
	return nil
}

// value reads a raster value, rejecting NaN and infinities.
func (r *run) value(idx int) (float64, error) {
	v := r.values[idx]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValueError{Row: idx / r.width, Col: idx % r.width, Value: v}
	}
	return v, nil
}

// window returns the inclusive row and column ranges of the square window of
// the given radius around idx, clipped to the interior.
func (r *run) window(idx, radius int) (y0, y1, x0, x1 int) {
	row, col := idx/r.width, idx%r.width
	y0 = max(row-radius, 1)
	y1 = min(row+radius, r.height-2)
	x0 = max(col-radius, 1)
	x1 = min(col+radius, r.width-2)
	return y0, y1, x0, x1
}
