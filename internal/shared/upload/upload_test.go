package upload

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageValidate(t *testing.T) {
	valid := Image{
		Filename:    "cover.jpg",
		ContentType: "image/jpeg",
		Data:        []byte{0xff, 0xd8, 0xff},
	}
	assert.NoError(t, valid.Validate())

	empty := Image{Filename: "cover.jpg", ContentType: "image/jpeg"}
	assert.ErrorIs(t, empty.Validate(), ErrInvalidImage)

	oversized := Image{
		Filename:    "cover.jpg",
		ContentType: "image/jpeg",
		Data:        bytes.Repeat([]byte{0}, MaxImageSize+1),
	}
	assert.ErrorIs(t, oversized.Validate(), ErrInvalidImage)

	wrongType := Image{
		Filename:    "cover.pdf",
		ContentType: "application/pdf",
		Data:        []byte{1},
	}
	assert.ErrorIs(t, wrongType.Validate(), ErrInvalidImage)
}

func TestImageSafeName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"cover.png", "cover.jpg"},
		{"My Great Photo.JPEG", "my-great-photo.jpg"},
		{"../../etc/passwd", "passwd.jpg"},
		{"übergrößé.png", "bergr.jpg"},
		{"???.png", "cover.jpg"},
		{"", "cover.jpg"},
	}

	for _, tt := range tests {
		img := Image{Filename: tt.filename}
		assert.Equal(t, tt.want, img.SafeName(), "filename %q", tt.filename)
	}
}
