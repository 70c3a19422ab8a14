package detection

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/crown-tools-mcp/internal/crown"
	"github.com/ironsheep/crown-tools-mcp/internal/imaging"
)

// Params configures one crown detection run.
type Params struct {
	// Cutoff is the minimum raster value, after scaling, considered canopy.
	Cutoff float64

	// LocalMaxRadius and PlateauRadius are the window half-widths used for
	// ascent and plateau growth.
	LocalMaxRadius int
	PlateauRadius  int

	// MaxChainDepth caps plateau chaining. Zero selects the crown package default.
	MaxChainDepth int

	// Region restricts detection to part of the raster. Nil means all of it.
	Region *imaging.Region

	// SmoothRadius applies a Gaussian blur before detection when positive.
	SmoothRadius float64

	// ValueScale and ValueOffset map raw samples to heights.
	ValueScale  float64
	ValueOffset float64

	// IncludeCrowns adds per-crown summaries to the result.
	IncludeCrowns bool

	// IncludeLabels adds the label grid as a 16-bit PNG.
	IncludeLabels bool

	// IncludeRender adds a colored crown map, resized by RenderScale
	// (zero means 1).
	IncludeRender bool
	RenderScale   float64
}

// Result is the outcome of a detection run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`

	// Width and Height are the dimensions of the processed raster, which is
	// the cropped region when one was given.
	Width  int `json:"width"`
	Height int `json:"height"`

	// CrownCount is the number of distinct crowns found.
	CrownCount int `json:"crown_count"`

	// NoInterior is set when the raster is smaller than 3x3 and therefore
	// entirely background.
	NoInterior bool `json:"no_interior,omitempty"`

	// ElapsedMS is the time spent labeling, in milliseconds.
	ElapsedMS int64 `json:"elapsed_ms"`

	Crowns []crown.Summary        `json:"crowns,omitempty"`
	Labels *imaging.EncodedImage `json:"labels,omitempty"`
	Render *imaging.EncodedImage `json:"render,omitempty"`
}

// DetectCrowns runs the full pipeline on img: crop, convert to a raster,
// smooth, label, then summarize and encode as requested.
//
// A raster without interior pixels is not an error; the result has
// NoInterior set and no crowns.
func DetectCrowns(ctx context.Context, img image.Image, p Params) (*Result, error) {
	if p.Region != nil {
		cropped, err := imaging.CropImage(img, *p.Region)
		if err != nil {
			return nil, err
		}
		img = cropped
	}

	raster := imaging.ToRaster(img, imaging.RasterOptions{Scale: p.ValueScale, Offset: p.ValueOffset})
	raster = raster.Smooth(p.SmoothRadius)

	start := time.Now()
	labeled, err := crown.Label(ctx, raster.Values, raster.Width, raster.Height, crown.Options{
		Cutoff:         p.Cutoff,
		LocalMaxRadius: p.LocalMaxRadius,
		PlateauRadius:  p.PlateauRadius,
		MaxChainDepth:  p.MaxChainDepth,
	})
	elapsed := time.Since(start)

	noInterior := false
	if err != nil {
		if !errors.Is(err, crown.ErrInvalidDimensions) || labeled == nil {
			return nil, fmt.Errorf("crown labeling failed: %w", err)
		}
		noInterior = true
	}

	res := &Result{
		RunID:      uuid.NewString(),
		Width:      labeled.Width,
		Height:     labeled.Height,
		CrownCount: labeled.Count,
		NoInterior: noInterior,
		ElapsedMS:  elapsed.Milliseconds(),
	}

	if p.IncludeCrowns {
		if res.Crowns, err = crown.Summarize(raster.Values, labeled); err != nil {
			return nil, err
		}
	}
	if p.IncludeLabels {
		if res.Labels, err = imaging.EncodeLabelPNG(labeled.Labels, labeled.Width, labeled.Height); err != nil {
			return nil, err
		}
	}
	if p.IncludeRender {
		scale := p.RenderScale
		if scale == 0 {
			scale = 1
		}
		if res.Render, err = imaging.RenderCrowns(labeled.Labels, labeled.Width, labeled.Height, scale); err != nil {
			return nil, err
		}
	}

	return res, nil
}
