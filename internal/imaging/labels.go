package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrTooManyLabels indicates a label grid that does not fit a 16-bit PNG.
var ErrTooManyLabels = errors.New("imaging: label exceeds 65535")

// ErrRenderSize indicates a render scale outside (0, MaxRenderScale] or a
// scaled map that is empty or larger than MaxRenderPixels.
var ErrRenderSize = errors.New("imaging: invalid render size")

// Limits on RenderCrowns output.
const (
	MaxRenderScale  = 16.0
	MaxRenderPixels = 1 << 24
)

// EncodedImage is a PNG returned inline as base64.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeLabelPNG encodes a row-major label grid as a 16-bit grayscale PNG in
// which each pixel's gray level is its label. Background stays 0.
func EncodeLabelPNG(labels []int, width, height int) (*EncodedImage, error) {
	if len(labels) != width*height {
		return nil, fmt.Errorf("label grid has %d cells, want %dx%d", len(labels), width, height)
	}

	img := image.NewGray16(image.Rect(0, 0, width, height))
	for i, label := range labels {
		if label < 0 || label > math.MaxUint16 {
			return nil, fmt.Errorf("%w: %d at index %d", ErrTooManyLabels, label, i)
		}
		img.SetGray16(i%width, i/width, color.Gray16{Y: uint16(label)})
	}
	return encodePNG(img)
}

// CrownColor returns the display color of a label. Hues advance by the golden
// angle so neighboring labels stay distinguishable. Label 0 is transparent.
func CrownColor(label int) color.NRGBA {
	if label <= 0 {
		return color.NRGBA{}
	}
	r, g, b := crownColor(label).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func crownColor(label int) colorful.Color {
	hue := math.Mod(float64(label)*137.508, 360)
	return colorful.Hcl(hue, 0.55, 0.72).Clamped()
}

// RenderCrowns draws a label grid as a color PNG: one color per crown, crown
// edges darkened, background transparent. A scale other than 1 resizes the
// result with nearest-neighbor sampling so crown edges stay crisp. The scale
// must lie in (0, MaxRenderScale] and the scaled map must be at least 1x1 and
// at most MaxRenderPixels; otherwise the error wraps ErrRenderSize.
func RenderCrowns(labels []int, width, height int, scale float64) (*EncodedImage, error) {
	if len(labels) != width*height {
		return nil, fmt.Errorf("label grid has %d cells, want %dx%d", len(labels), width, height)
	}

	if !(scale > 0 && scale <= MaxRenderScale) {
		return nil, fmt.Errorf("%w: scale %v", ErrRenderSize, scale)
	}
	newWidth := int(float64(width) * scale)
	newHeight := int(float64(height) * scale)
	if newWidth < 1 || newHeight < 1 || newWidth*newHeight > MaxRenderPixels {
		return nil, fmt.Errorf("%w: %dx%d raster at scale %v gives %dx%d",
			ErrRenderSize, width, height, scale, newWidth, newHeight)
	}

	black := colorful.Color{}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			label := labels[y*width+x]
			if label <= 0 {
				continue
			}
			c := crownColor(label)
			if isEdge(labels, width, height, x, y) {
				c = c.BlendLab(black, 0.45).Clamped()
			}
			r, g, b := c.RGB255()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}

	var out image.Image = img
	if newWidth != width || newHeight != height {
		out = imaging.Resize(img, newWidth, newHeight, imaging.NearestNeighbor)
	}
	return encodePNG(out)
}

// isEdge reports whether a 4-neighbor of (x, y) carries a different label.
// Pixels on the raster edge count as crown edges.
func isEdge(labels []int, width, height, x, y int) bool {
	label := labels[y*width+x]
	for _, d := range [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}} {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || ny < 0 || nx >= width || ny >= height {
			return true
		}
		if labels[ny*width+nx] != label {
			return true
		}
	}
	return false
}

func encodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &EncodedImage{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
