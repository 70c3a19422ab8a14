// Package crown labels individual tree crowns in a single-band elevation raster.
//
// The input is a canopy height model (or any intensity raster) stored as a flat,
// row-major slice of float64 values. The output is a same-shaped slice of integer
// labels where 0 is background and 1..N identify the detected crowns.
//
// # Algorithm
//
// Labeling runs in three phases for every interior pixel, in row-major order:
//
//  1. Ascent: starting at the pixel, repeatedly move to the strictly greatest
//     value inside a square window of radius LocalMaxRadius until no neighbor is
//     higher. The pixel reached is the local apex. Ties go to the first
//     candidate in row-major scan order of the window.
//  2. Plateau discovery: from the apex, grow the set of pixels whose values equal
//     the apex value within Tolerance, scanning windows of radius PlateauRadius.
//     If a strictly higher pixel shows up, the set collapses into that pixel's
//     plateau. Results are memoized so every pixel belongs to at most one plateau.
//  3. Label assignment: each distinct plateau gets the next label on first sight.
//     The plateau members and the originating pixel receive that label.
//
// # Boundary Policy
//
// The outermost ring of pixels is never processed and is always labeled 0.
// Windows are clipped to the interior; there is no wraparound and no clamping.
//
// # Errors
//
// Rasters narrower or shorter than 3 pixels yield ErrInvalidDimensions together
// with a valid all-background Result. NaN or infinite values fail with
// ErrNonFiniteValue when first read, and overly long plateau chains fail with
// ErrChainDepthExceeded.
//
// # Thread Safety
//
// A Labeler only reads its grid. Each call to Label builds its own memo table, so
// one Labeler may be used from several goroutines as long as nobody mutates the
// grid underneath it.
package crown
