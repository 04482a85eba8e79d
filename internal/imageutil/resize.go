package imageutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultMaxWidth is the default maximum width of stored photos
const DefaultMaxWidth = 1280

// DefaultQuality is the default JPEG quality of stored photos
const DefaultQuality = 80

// ResizeConfig holds configuration for image resizing
type ResizeConfig struct {
	MaxWidth     int    // Maximum width; narrower images are never enlarged (default 1280)
	Quality      int    // JPEG quality 1-100 (default 80)
	OutputFormat string // "jpeg" or "png" (default "jpeg")
}

// DefaultConfig returns default resize configuration
func DefaultConfig() *ResizeConfig {
	return &ResizeConfig{
		MaxWidth:     DefaultMaxWidth,
		Quality:      DefaultQuality,
		OutputFormat: "jpeg",
	}
}

// ResizeImage scales an image down to the configured width, keeping the aspect
// ratio, and re-encodes it. Images already narrow enough are only re-encoded.
func ResizeImage(imageData []byte, config *ResizeConfig) ([]byte, error) {
	if config == nil {
		config = DefaultConfig()
	}
	maxWidth := config.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	quality := config.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	// Decode the image
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var out image.Image = img
	if width > maxWidth {
		newHeight := int(float64(height) * float64(maxWidth) / float64(width))
		if newHeight < 1 {
			newHeight = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newHeight))

		// Use high-quality resampling (CatmullRom is similar to Lanczos)
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	switch config.OutputFormat {
	case "png":
		err = png.Encode(&buf, out)
	default:
		err = jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}

// ResizeImageReader resizes an image from an io.Reader
func ResizeImageReader(r io.Reader, config *ResizeConfig) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return ResizeImage(data, config)
}
