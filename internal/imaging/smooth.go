package imaging

import (
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"gonum.org/v1/gonum/floats"
)

// Smooth returns a copy of r blurred with a Gaussian of the given radius. A
// radius of zero or less returns r unchanged.
//
// Smoothing a canopy height model before detection suppresses single-pixel
// spikes that would otherwise each become a crown. The kernel has the shape
// bild's blur.Gaussian uses, sampled at whole-pixel offsets so it stays
// symmetric, and pixels beyond the edge repeat the edge value. The blur runs
// on the float values, so 16-bit rasters keep their full precision.
func (r *Raster) Smooth(radius float64) *Raster {
	if radius <= 0 || len(r.Values) == 0 {
		return r
	}

	k := gaussianKernel(radius)
	half := len(k) / 2
	buf := make([]float64, max(r.Width, r.Height)+2*half)

	tmp := make([]float64, len(r.Values))
	for y := 0; y < r.Height; y++ {
		convolveLine(tmp, r.Values, y*r.Width, 1, r.Width, k, buf)
	}
	out := make([]float64, len(r.Values))
	for x := 0; x < r.Width; x++ {
		convolveLine(out, tmp, x, r.Width, r.Height, k, buf)
	}

	return &Raster{
		Width:  r.Width,
		Height: r.Height,
		Values: out,
		Min:    floats.Min(out),
		Max:    floats.Max(out),
	}
}

// gaussianKernel returns the normalized 1-D kernel for radius.
func gaussianKernel(radius float64) []float64 {
	half := int(math.Ceil(radius))
	k := convolution.NewKernel(2*half+1, 1)
	for i := range k.Matrix {
		x := float64(i - half)
		k.Matrix[i] = math.Exp(-(x * x / 4 / radius))
	}
	return k.Normalized().(*convolution.Kernel).Matrix
}

// convolveLine convolves the n values of src starting at start and spaced by
// step with k, writing to the same positions in dst. buf must hold n+len(k)-1
// values.
func convolveLine(dst, src []float64, start, step, n int, k, buf []float64) {
	half := len(k) / 2
	padded := buf[:n+2*half]
	for i := range padded {
		j := min(max(i-half, 0), n-1)
		padded[i] = src[start+j*step]
	}
	for i := 0; i < n; i++ {
		dst[start+i*step] = floats.Dot(k, padded[i:i+len(k)])
	}
}
