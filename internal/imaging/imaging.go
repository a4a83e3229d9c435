// Package imaging handles panorama image decoding and the two compression
// tiers: a reduced preview used as the live sphere texture, and the original
// bytes kept for export.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
)

const (
	// PreviewMaxWidth caps the preview texture width. Equirectangular
	// panoramas keep their 2:1 aspect through the resize.
	PreviewMaxWidth = 2048

	// PreviewQuality is the JPEG quality of the preview tier.
	PreviewQuality = 70

	// LegacyQuality is the JPEG quality used by the legacy single-panorama
	// project save and its export.
	LegacyQuality = 95
)

// Info describes a decoded panorama.
type Info struct {
	Width  int
	Height int
}

// Decode decodes JPEG or PNG panorama bytes.
func Decode(data []byte) (image.Image, Info, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("failed to decode panorama image: %w", err)
	}
	b := img.Bounds()
	return img, Info{Width: b.Dx(), Height: b.Dy()}, nil
}

// EncodeJPEG encodes an image as JPEG at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// MakePreview produces the preview-tier copy of a panorama: downscaled to at
// most PreviewMaxWidth and recompressed at PreviewQuality.
func MakePreview(data []byte) ([]byte, Info, error) {
	img, info, err := Decode(data)
	if err != nil {
		return nil, Info{}, err
	}

	if info.Width > PreviewMaxWidth {
		h := info.Height * PreviewMaxWidth / info.Width
		img = transform.Resize(img, PreviewMaxWidth, h, transform.Linear)
		info = Info{Width: PreviewMaxWidth, Height: h}
	}

	out, err := EncodeJPEG(img, PreviewQuality)
	if err != nil {
		return nil, Info{}, err
	}
	return out, info, nil
}

// Recompress re-encodes a panorama at the given JPEG quality without
// resizing. Used by the legacy project save path.
func Recompress(data []byte, quality int) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return EncodeJPEG(img, quality)
}
