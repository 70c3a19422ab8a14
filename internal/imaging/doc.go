// Package imaging converts raster files into elevation grids for crown detection
// and encodes label grids back into images.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Raster values are stored row-major, so the value at (x, y) lives at index
// y*Width + x. The crown package uses (row, col), which is (y, x).
//
// # Raster Values
//
// ToRaster reads one value per pixel. Grayscale rasters supply their gray level
// directly (0-255 or 0-65535 for 16-bit data); color rasters are read through
// their luminance. RasterOptions applies a linear scale and offset, for example
// to turn a canopy height model stored in centimeters into meters.
//
// # Label Images
//
// EncodeLabelPNG writes labels as 16-bit gray levels so the grid can be read
// back exactly. RenderCrowns draws a colored crown map for display.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Everything else is stateless.
package imaging
