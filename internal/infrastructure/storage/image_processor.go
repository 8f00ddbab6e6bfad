package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"bookshelf-backend/internal/shared/upload"
)

// Covers larger than this are scaled down before upload. Uploads are
// page-size bound by the HTTP layer; this bounds what we store.
const maxCoverWidth = 1200

// ImageProcessor validates uploaded cover images and normalizes them
// to JPEG before they reach object storage.
type ImageProcessor struct {
	jpegQuality int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{jpegQuality: 85}
}

// NormalizeJPEG decodes an uploaded image (JPEG, PNG, GIF, TIFF, BMP),
// scales it down to at most maxCoverWidth and re-encodes it as JPEG.
// A payload that does not decode as an image is rejected here, before
// anything is uploaded.
func (p *ImageProcessor) NormalizeJPEG(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", upload.ErrInvalidImage, err)
	}

	if img.Bounds().Dx() > maxCoverWidth {
		img = imaging.Resize(img, maxCoverWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
