// Package detection runs tree crown detection on decoded rasters.
//
// It glues the imaging and crown packages together into one pipeline:
//
//  1. Crop: optionally restrict the raster to a region of interest
//  2. Convert: read one value per pixel, applying a linear scale and offset
//  3. Smooth: optionally blur the canopy height model to suppress spikes
//  4. Label: assign every canopy pixel to a crown (see package crown)
//  5. Report: crown count plus, on request, per-crown summaries, the label
//     grid as a 16-bit PNG and a colored crown map
//
// # Choosing Parameters
//
// Cutoff separates canopy from ground and should sit just above the tallest
// non-tree vegetation, in the units the raster values end up in after
// scaling. LocalMaxRadius controls how far ascent looks for a higher pixel;
// larger values merge nearby tops into one crown. PlateauRadius controls how
// far flat tops and shelves are followed; larger values merge shelves into
// the summit they lead to.
//
// # Coordinate System
//
// Crown summaries use (row, col), which is (y, x) in image terms, relative to
// the processed raster. When a region is given, add its top-left corner to
// recover positions in the full raster.
package detection
