// Package imagefile loads screenshots from disk in the formats a user is
// likely to throw at the tool.
package imagefile

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Extensions lists the file extensions the loader accepts, for use in
// file-open dialogs.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp"}

// Supported reports whether the path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads an image from disk.
func Load(path string) (image.Image, error) {
	if img, err := imaging.Open(path, imaging.AutoOrientation(true)); err == nil {
		return img, nil
	}

	// imaging does not know webp; fall back to the explicit decoder,
	// then to whatever decoders are registered.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
		if _, err := f.Seek(0, 0); err != nil {
			return nil, fmt.Errorf("rewind %s: %w", path, err)
		}
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Downscale returns the image resized so that neither dimension exceeds
// maxDim, preserving aspect ratio. The original is returned unchanged
// when it already fits or maxDim is zero. Used before sending screenshots
// to the vision model; element coordinates always refer to the original.
func Downscale(img image.Image, maxDim int) image.Image {
	if img == nil || maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	if w >= h {
		return imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxDim, imaging.Lanczos)
}

// ScaleFactor returns the factor that maps coordinates on the downscaled
// image back to the original, or 1 when no downscale happened.
func ScaleFactor(original, scaled image.Image) float64 {
	if original == nil || scaled == nil {
		return 1
	}
	ow := original.Bounds().Dx()
	sw := scaled.Bounds().Dx()
	if ow == 0 || sw == 0 || ow == sw {
		return 1
	}
	return float64(ow) / float64(sw)
}
