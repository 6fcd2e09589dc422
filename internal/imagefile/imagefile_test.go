package imagefile

import (
	"image"
	"testing"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"shot.png", true},
		{"shot.PNG", true},
		{"shot.jpeg", true},
		{"shot.webp", true},
		{"shot.tif", true},
		{"shot.svg", false},
		{"shot", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDownscale(t *testing.T) {
	wide := image.NewRGBA(image.Rect(0, 0, 2000, 1000))

	got := Downscale(wide, 1000)
	if b := got.Bounds(); b.Dx() != 1000 || b.Dy() != 500 {
		t.Errorf("wide downscale = %dx%d, want 1000x500", b.Dx(), b.Dy())
	}

	small := image.NewRGBA(image.Rect(0, 0, 300, 200))
	if got := Downscale(small, 1000); got != small {
		t.Errorf("image already within bounds was resized")
	}
	if got := Downscale(small, 0); got != small {
		t.Errorf("maxDim 0 must be a no-op")
	}
}

func TestScaleFactor(t *testing.T) {
	orig := image.NewRGBA(image.Rect(0, 0, 2000, 1000))
	scaled := Downscale(orig, 1000)

	if got := ScaleFactor(orig, scaled); got != 2 {
		t.Errorf("ScaleFactor = %v, want 2", got)
	}
	if got := ScaleFactor(orig, orig); got != 1 {
		t.Errorf("identical images: ScaleFactor = %v, want 1", got)
	}
}
