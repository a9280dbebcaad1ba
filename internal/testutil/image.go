package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// TinyPNG returns an encoded w x h PNG for upload tests.
func TinyPNG(t interface{ Fatalf(string, ...any) }, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
