package upload

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidImage marks uploads rejected before or during processing,
// so handlers can answer 400 instead of 500.
var ErrInvalidImage = errors.New("invalid image")

// MaxImageSize bounds uploaded cover images (5 MiB).
const MaxImageSize = 5 << 20

// Image is an uploaded file pulled out of a multipart request.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Validate rejects uploads that are empty, oversized or not declared
// as an image. Decoding the payload is the storage layer's job; this
// is the cheap pre-check.
func (i *Image) Validate() error {
	if len(i.Data) == 0 {
		return fmt.Errorf("%w: payload is empty", ErrInvalidImage)
	}
	if len(i.Data) > MaxImageSize {
		return fmt.Errorf("%w: exceeds maximum size of %d bytes", ErrInvalidImage, MaxImageSize)
	}
	if !strings.HasPrefix(i.ContentType, "image/") {
		return fmt.Errorf("%w: unsupported content type %q", ErrInvalidImage, i.ContentType)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9-_]+`)

// SafeName turns the client-supplied filename into a storage-safe base
// name with a .jpg extension (covers are normalized to JPEG before
// upload).
func (i *Image) SafeName() string {
	base := strings.TrimSuffix(filepath.Base(i.Filename), filepath.Ext(i.Filename))
	base = unsafeChars.ReplaceAllString(strings.ToLower(base), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "cover"
	}
	return base + ".jpg"
}
