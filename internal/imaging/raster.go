package imaging

import (
	"image"
	"image/color"
	"math"
)

// Raster is a single-band grid of values in row-major order.
type Raster struct {
	Width  int
	Height int
	Values []float64

	// Min and Max are the value range after scaling. Both are 0 for an
	// empty raster.
	Min float64
	Max float64
}

// At returns the value at (x, y), relative to the raster origin.
func (r *Raster) At(x, y int) float64 {
	return r.Values[y*r.Width+x]
}

// RasterOptions controls how pixel samples map to raster values.
type RasterOptions struct {
	// Scale multiplies every sample. Zero means 1.
	Scale float64

	// Offset is added after scaling.
	Offset float64
}

// ToRaster extracts one value per pixel from img.
//
// Gray16 and other 16-bit images yield samples in 0-65535, everything else in
// 0-255. Color images are reduced to luminance with the standard library gray
// model. The sample is then mapped to Scale*sample + Offset.
func ToRaster(img image.Image, opts RasterOptions) *Raster {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	r := &Raster{
		Width:  w,
		Height: h,
		Values: make([]float64, w*h),
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := sampleAt(img, bounds.Min.X+x, bounds.Min.Y+y)*scale + opts.Offset
			r.Values[y*w+x] = v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if len(r.Values) > 0 {
		r.Min, r.Max = lo, hi
	}
	return r
}

func sampleAt(img image.Image, x, y int) float64 {
	switch m := img.(type) {
	case *image.Gray16:
		return float64(m.Gray16At(x, y).Y)
	case *image.Gray:
		return float64(m.GrayAt(x, y).Y)
	}
	if Is16Bit(img) {
		return float64(color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y)
	}
	return float64(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
}

// Is16Bit reports whether img stores 16 bits per sample.
func Is16Bit(img image.Image) bool {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return true
	}
	return false
}

func isSingleBand(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}
