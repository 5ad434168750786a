package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shutils/internal/model"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func createTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func createTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h, color.RGBA{0, 0, 255, 255})))
	return buf.Bytes()
}

func createTestGIF(t *testing.T, w, h int) []byte {
	t.Helper()
	pal := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, pal, nil))
	return buf.Bytes()
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	return img
}

func TestProcessFormats(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{"jpeg", func(t *testing.T) []byte { return createTestJPEG(t, 100, 80) }},
		{"png", func(t *testing.T) []byte { return createTestPNG(t, 100, 80) }},
		{"gif", func(t *testing.T) []byte { return createTestGIF(t, 100, 80) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Process(bytes.NewReader(tt.data(t)))
			require.NoError(t, err)
			assert.Equal(t, OutputMIME, result.MIME)
			assert.Equal(t, 100, result.Width)
			assert.Equal(t, 80, result.Height)

			b := decode(t, result.Data).Bounds()
			assert.Equal(t, 100, b.Dx())
			assert.Equal(t, 80, b.Dy())
		})
	}
}

func TestProcessDownscale(t *testing.T) {
	result, err := Process(bytes.NewReader(createTestPNG(t, 1920, 1080)))
	require.NoError(t, err)

	assert.Equal(t, MaxDimension, result.Width)
	assert.Equal(t, 540, result.Height)

	b := decode(t, result.Data).Bounds()
	assert.Equal(t, result.Width, b.Dx())
	assert.Equal(t, result.Height, b.Dy())
}

func TestProcessDownscaleKeepsPixelColours(t *testing.T) {
	result, err := Process(bytes.NewReader(createTestPNG(t, 2000, 2000)))
	require.NoError(t, err)

	img := decode(t, result.Data)
	r, g, b, a := img.At(10, 10).RGBA()
	assert.Equal(t, []uint32{0, 0, 0xffff, 0xffff}, []uint32{r, g, b, a})
}

func TestProcessRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("not an image")},
		{"truncated png", []byte("\x89PNG\r\n\x1a\n garbage")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Process(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}
