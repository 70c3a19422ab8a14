package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// ImageCache provides thread-safe caching of decoded rasters to avoid redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once a raster
// is loaded, subsequent Load() calls for the same path return the cached copy without
// disk I/O. Crown detection typically runs several times over one canopy height model
// while parameters are tuned, so the cache saves a decode per run.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached rasters remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/data/chm.tif")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	raster := imaging.ToRaster(img, imaging.RasterOptions{})
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves a raster from the cache or decodes it from disk if not cached.
//
// Supported formats are PNG, JPEG, GIF and TIFF. The cache key is the exact path
// string, so relative and absolute paths to one file are cached separately.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a decodable raster
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raster: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode raster: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all rasters from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific raster from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// RasterInfo contains metadata about a loaded raster file.
type RasterInfo struct {
	// Width is the raster width in pixels.
	Width int `json:"width"`

	// Height is the raster height in pixels.
	Height int `json:"height"`

	// Format is the format guessed from the file extension:
	// "png", "jpeg", "gif", "tiff" or "unknown".
	Format string `json:"format"`

	// BitDepth is "16-bit" when values keep 16 bits of precision, else "8-bit".
	BitDepth string `json:"bit_depth"`

	// SingleBand is true for grayscale rasters. Color rasters are read
	// through their luminance.
	SingleBand bool `json:"single_band"`

	// MinValue and MaxValue are the raw value range before any scaling.
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadRasterInfo loads a raster and returns metadata about it, including the
// raw value range, which helps pick a detection cutoff.
func LoadRasterInfo(cache *ImageCache, path string) (*RasterInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".tif", ".tiff":
		format = "tiff"
	}

	bitDepth := "8-bit"
	if Is16Bit(img) {
		bitDepth = "16-bit"
	}

	raster := ToRaster(img, RasterOptions{})
	return &RasterInfo{
		Width:         raster.Width,
		Height:        raster.Height,
		Format:        format,
		BitDepth:      bitDepth,
		SingleBand:    isSingleBand(img),
		MinValue:      raster.Min,
		MaxValue:      raster.Max,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of a raster.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of a raster without computing value ranges.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
