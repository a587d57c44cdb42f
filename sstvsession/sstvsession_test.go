package sstvsession

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/sstv/codec/sstv"
	"github.com/ausocean/sstv/sstvsession/config"
)

func testLogger() logging.Logger {
	return logging.New(logging.Debug, &bytes.Buffer{}, true)
}

func writeTestPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 100, G: 150, B: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
}

func TestSessionEncodeThenDecode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full-resolution encode/decode round trip in short mode")
	}
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "src.png")
	wavPath := filepath.Join(dir, "out.wav")
	outPath := filepath.Join(dir, "decoded.png")

	writeTestPNG(t, imgPath, sstv.Registry[sstv.Robot36].Width, sstv.Registry[sstv.Robot36].Lines)

	encCfg := config.Config{
		Direction:  config.DirectionEncode,
		Mode:       sstv.Robot36,
		InputPath:  imgPath,
		OutputPath: wavPath,
		SampleRate: 16000,
		Logger:     testLogger(),
	}
	encSession, err := New(encCfg)
	if err != nil {
		t.Fatalf("New(encode): %v", err)
	}
	if _, err := encSession.Run(); err != nil {
		t.Fatalf("Run(encode): %v", err)
	}
	if _, err := os.Stat(wavPath); err != nil {
		t.Fatalf("expected WAV output: %v", err)
	}

	decCfg := config.Config{
		Direction:      config.DirectionDecode,
		InputPath:      wavPath,
		InputContainer: config.InputWAV,
		OutputPath:     outPath,
		AutoCalibrate:  true,
		Logger:         testLogger(),
	}
	decSession, err := New(decCfg)
	if err != nil {
		t.Fatalf("New(decode): %v", err)
	}
	diag, err := decSession.Run()
	if err != nil {
		t.Fatalf("Run(decode): %v", err)
	}
	if diag.ModeName != sstv.Registry[sstv.Robot36].Name {
		t.Errorf("ModeName = %q, want %q", diag.ModeName, sstv.Registry[sstv.Robot36].Name)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected PNG output: %v", err)
	}
}

func TestSessionRejectsIncompleteConfig(t *testing.T) {
	_, err := New(config.Config{})
	if err == nil {
		t.Fatal("expected error for empty config")
	}
}

func TestSessionRejectsConcurrentRun(t *testing.T) {
	s := &Session{cfg: config.Config{Logger: testLogger()}, running: true}
	if _, err := s.Run(); err == nil {
		t.Fatal("expected error when already running")
	}
}

func TestResizeNearest(t *testing.T) {
	// 2x2 source, scale to 4x2: each source column should be duplicated.
	src := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 0, 255,
	}
	out, w, h := resizeNearest(src, 2, 2, 4, 2)
	if w != 4 || h != 2 {
		t.Fatalf("resizeNearest size = %dx%d, want 4x2", w, h)
	}
	if len(out) != 4*2*4 {
		t.Fatalf("len(out) = %d, want %d", len(out), 4*2*4)
	}
	// Column 0 and column 1 of the output should both sample source column 0.
	px := func(b []byte, width, x, y int) [4]byte {
		i := (y*width + x) * 4
		return [4]byte{b[i], b[i+1], b[i+2], b[i+3]}
	}
	if px(out, 4, 0, 0) != px(out, 4, 1, 0) {
		t.Errorf("expected columns 0 and 1 to match (both sample source column 0)")
	}
}
