package crown

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates a raster with no interior pixels.
	// Label still returns an all-background Result alongside it.
	ErrInvalidDimensions = errors.New("crown: raster must be at least 3x3")
	// ErrGridSize indicates the value slice does not hold width*height values.
	ErrGridSize = errors.New("crown: value count does not match width*height")
	// ErrNegativeRadius indicates a negative search radius.
	ErrNegativeRadius = errors.New("crown: search radius must be non-negative")
	// ErrInvalidCutoff indicates a NaN or infinite cutoff.
	ErrInvalidCutoff = errors.New("crown: cutoff must be finite")
	// ErrNonFiniteValue indicates a NaN or infinite raster value.
	ErrNonFiniteValue = errors.New("crown: non-finite raster value")
	// ErrChainDepthExceeded indicates plateau discovery chained through more
	// shelves than Options.MaxChainDepth allows.
	ErrChainDepthExceeded = errors.New("crown: plateau chain depth exceeded")
)

// ValueError reports the position of a non-finite raster value.
type ValueError struct {
	Row, Col int
	Value    float64
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("crown: non-finite value %v at row %d, col %d", e.Value, e.Row, e.Col)
}

// Unwrap makes errors.Is(err, ErrNonFiniteValue) hold.
func (e *ValueError) Unwrap() error { return ErrNonFiniteValue }
