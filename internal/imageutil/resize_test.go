package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestResizeImage_ScalesDownWideImages(t *testing.T) {
	out, err := ResizeImage(encodePNG(t, 400, 200), &ResizeConfig{MaxWidth: 100, Quality: 80})
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestResizeImage_NeverEnlarges(t *testing.T) {
	out, err := ResizeImage(encodePNG(t, 60, 90), nil)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestResizeImage_PNGOutput(t *testing.T) {
	out, err := ResizeImageReader(bytes.NewReader(encodePNG(t, 20, 10)), &ResizeConfig{MaxWidth: 10, OutputFormat: "png"})
	require.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestResizeImage_InvalidData(t *testing.T) {
	_, err := ResizeImage([]byte("not an image"), nil)
	assert.Error(t, err)
}
