package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/shared/upload"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestNormalizeJPEGConvertsToJPEG(t *testing.T) {
	p := NewImageProcessor()

	out, err := p.NormalizeJPEG(encodePNG(t, 64, 48))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestNormalizeJPEGDownscalesWideImages(t *testing.T) {
	p := NewImageProcessor()

	out, err := p.NormalizeJPEG(encodePNG(t, maxCoverWidth*2, maxCoverWidth))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, maxCoverWidth, cfg.Width)
	assert.Equal(t, maxCoverWidth/2, cfg.Height, "aspect ratio must be preserved")
}

func TestNormalizeJPEGRejectsGarbage(t *testing.T) {
	p := NewImageProcessor()

	_, err := p.NormalizeJPEG([]byte("not an image at all"))
	assert.ErrorIs(t, err, upload.ErrInvalidImage)
}
