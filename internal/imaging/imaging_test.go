package imaging

import (
	"image"
	"image/color"
	"testing"
)

// testPanorama builds an in-memory 2:1 gradient image and returns its JPEG
// bytes.
func testPanorama(t *testing.T, width int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, width/2))
	for y := 0; y < width/2; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	data, err := EncodeJPEG(img, 90)
	if err != nil {
		t.Fatalf("failed to encode test panorama: %v", err)
	}
	return data
}

func TestDecode_Valid(t *testing.T) {
	data := testPanorama(t, 512)

	_, info, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Width != 512 || info.Height != 256 {
		t.Errorf("expected 512x256, got %dx%d", info.Width, info.Height)
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, _, err := Decode([]byte("not an image"))
	if err == nil {
		t.Fatal("expected error for undecodable data")
	}
}

func TestMakePreview_SmallImageKeepsSize(t *testing.T) {
	data := testPanorama(t, 1024)

	preview, info, err := MakePreview(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Width != 1024 || info.Height != 512 {
		t.Errorf("small image resized: %dx%d", info.Width, info.Height)
	}

	_, decoded, err := Decode(preview)
	if err != nil {
		t.Fatalf("preview not decodable: %v", err)
	}
	if decoded.Width != 1024 {
		t.Errorf("preview width %d", decoded.Width)
	}
}

func TestMakePreview_LargeImageDownscaled(t *testing.T) {
	data := testPanorama(t, 4096)

	preview, info, err := MakePreview(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Width != PreviewMaxWidth {
		t.Errorf("expected width %d, got %d", PreviewMaxWidth, info.Width)
	}
	if info.Height != PreviewMaxWidth/2 {
		t.Errorf("aspect ratio not preserved: height %d", info.Height)
	}
	if len(preview) >= len(data) {
		t.Errorf("preview (%d bytes) not smaller than original (%d bytes)", len(preview), len(data))
	}
}

func TestRecompress(t *testing.T) {
	data := testPanorama(t, 256)

	out, err := Recompress(data, LegacyQuality)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := Decode(out); err != nil {
		t.Fatalf("recompressed image not decodable: %v", err)
	}
}
