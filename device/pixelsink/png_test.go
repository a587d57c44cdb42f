package pixelsink

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/utils/logging"
)

func testLogger() logging.Logger {
	return logging.New(logging.Debug, &bytes.Buffer{}, true)
}

func buildTestPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i] = 10
		pixels[i+1] = 20
		pixels[i+2] = 30
		pixels[i+3] = 255
	}
	return pixels
}

func TestPNGFileSinkWritesDecodablePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	sink := NewPNGFileSink(path, testLogger())
	if sink.Name() != path {
		t.Errorf("Name() = %q, want %q", sink.Name(), path)
	}

	pixels := buildTestPixels(4, 3)
	if err := sink.Write(pixels, 4, 3); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 3 {
		t.Errorf("decoded size = %dx%d, want 4x3", bounds.Dx(), bounds.Dy())
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if a>>8 != 255 {
		t.Errorf("alpha = %d, want 255", a>>8)
	}
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel(0,0) = (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}
