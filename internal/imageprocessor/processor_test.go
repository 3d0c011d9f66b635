package imageprocessor

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
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_DownscalesKeepingRatio(t *testing.T) {
	p := NewProcessor(0)

	res, err := p.Process(bytes.NewReader(encodePNG(t, 1600, 800)), SizeLogo)
	require.NoError(t, err)

	assert.Equal(t, 400, res.Width)
	assert.Equal(t, 200, res.Height)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, ".png", res.Extension)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 400, cfg.Width)
}

func TestProcess_SmallImageUntouched(t *testing.T) {
	res, err := NewProcessor(90).Process(bytes.NewReader(encodePNG(t, 120, 60)), SizeLogo)
	require.NoError(t, err)
	assert.Equal(t, 120, res.Width)
	assert.Equal(t, 60, res.Height)
}

func TestProcess_KeepsJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	res, err := NewProcessor(80).Process(&buf, SizeLogo)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", res.ContentType)
	assert.Equal(t, ".jpg", res.Extension)
}

func TestProcess_RejectsGarbage(t *testing.T) {
	_, err := NewProcessor(80).Process(bytes.NewReader([]byte("%PDF-1.4 not an image")), SizeLogo)
	assert.ErrorIs(t, err, ErrInvalidImage)
}
