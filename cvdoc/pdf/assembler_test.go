package pdf

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"businessconnect-backend/cvdoc/capture"
)

func testPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testFrames(t *testing.T, n int) []capture.PageFrame {
	t.Helper()
	frames := make([]capture.PageFrame, 0, n)
	for i := 0; i < n; i++ {
		shade := uint8(40 * (i + 1))
		frames = append(frames, capture.PageFrame{
			Index: i,
			PNG:   testPNG(t, 80, 113, color.RGBA{R: shade, G: shade, B: 200, A: 255}),
		})
	}
	return frames
}

func TestAssembleEmptyFrames(t *testing.T) {
	if _, err := Assemble(nil, 794, 1123); !errors.Is(err, ErrNoPages) {
		t.Fatalf("err = %v, want ErrNoPages", err)
	}
}

func TestAssembleOnePagePerFrame(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		frames := testFrames(t, n)
		data, err := Assemble(frames, 794, 1123)
		if err != nil {
			t.Fatalf("%d frames: %v", n, err)
		}
		if err := Validate(data, n); err != nil {
			t.Errorf("%d frames: %v", n, err)
		}
	}
}

func TestAssembleRejectsEmptyFrameData(t *testing.T) {
	frames := []capture.PageFrame{{Index: 0, PNG: nil}}
	if _, err := Assemble(frames, 794, 1123); err == nil {
		t.Fatal("frame without raster data must fail")
	}
}

func TestAssembleRejectsInvalidGeometry(t *testing.T) {
	frames := testFrames(t, 1)
	if _, err := Assemble(frames, 0, 1123); err == nil {
		t.Fatal("zero page width must fail")
	}
	if _, err := Assemble(frames, 794, -1); err == nil {
		t.Fatal("negative page height must fail")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate([]byte("not a pdf"), 1); err == nil {
		t.Fatal("garbage bytes must not validate")
	}
}

func TestValidatePageCountMismatch(t *testing.T) {
	data, err := Assemble(testFrames(t, 2), 794, 1123)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if err := Validate(data, 3); err == nil {
		t.Fatal("wrong expected page count must fail validation")
	}
}
