package detect

import (
	"fmt"
	"image"
	"sort"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// LocalOptions configures the contour-based fallback detector.
type LocalOptions struct {
	MinArea     float64 // smallest contour area kept, in image pixels
	BlurKernel  int     // Gaussian blur kernel side, must be odd
	DilateIters int     // edge dilation passes before contour extraction
}

// DefaultLocalOptions returns detector settings tuned for screenshots.
func DefaultLocalOptions() LocalOptions {
	return LocalOptions{
		MinArea:     400,
		BlurKernel:  5,
		DilateIters: 2,
	}
}

// LocalDetector finds rectangular regions of interest without a model:
// edge detection plus external contours. It is far cruder than the vision
// model but works offline and is instant, which makes it useful for
// smoke-testing the editing surface.
type LocalDetector struct {
	opts LocalOptions
}

// NewLocalDetector creates a contour-based detector.
func NewLocalDetector(opts LocalOptions) *LocalDetector {
	return &LocalDetector{opts: opts}
}

// Detect returns bounding boxes of high-contrast regions in the image,
// largest first, numbered from 1.
func (d *LocalDetector) Detect(img image.Image) ([]Element, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to analyze")
	}

	mat, err := imageToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := d.opts.BlurKernel
	gocv.GaussianBlur(gray, &blurred, image.Point{k, k}, 0, 0, gocv.BorderDefault)

	lo, hi := cannyThresholds(blurred)
	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, lo, hi)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{3, 3})
	defer kernel.Close()
	for i := 0; i < d.opts.DilateIters; i++ {
		gocv.Dilate(edges, &edges, kernel)
	}

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	type region struct {
		rect image.Rectangle
		area float64
	}
	regions := make([]region, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		if area < d.opts.MinArea {
			continue
		}
		regions = append(regions, region{rect: gocv.BoundingRect(c), area: area})
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].area > regions[j].area
	})

	out := make([]Element, 0, len(regions))
	for i, r := range regions {
		b := r.rect
		out = append(out, Element{
			ID:  i + 1,
			Box: [4]int{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y},
			Description: fmt.Sprintf("Detected region %dx%d at (%d, %d). High-contrast area found by local edge analysis.",
				b.Dx(), b.Dy(), b.Min.X, b.Min.Y),
		})
	}
	return out, nil
}

// cannyThresholds derives hysteresis thresholds from the intensity
// distribution of the grayscale image, sampling a pixel grid rather than
// every pixel.
func cannyThresholds(gray gocv.Mat) (lo, hi float32) {
	rows, cols := gray.Rows(), gray.Cols()
	if rows == 0 || cols == 0 {
		return 50, 150
	}

	step := 4
	samples := make([]float64, 0, (rows/step+1)*(cols/step+1))
	for y := 0; y < rows; y += step {
		for x := 0; x < cols; x += step {
			samples = append(samples, float64(gray.GetUCharAt(y, x)))
		}
	}

	mean, std := stat.MeanStdDev(samples, nil)
	lo = float32(mean - std)
	hi = float32(mean + std)
	if lo < 10 {
		lo = 10
	}
	if hi > 255 {
		hi = 255
	}
	if hi <= lo {
		hi = lo + 50
	}
	return lo, hi
}

// imageToMat converts a Go image.Image to a BGR gocv.Mat.
func imageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.Mat{}, fmt.Errorf("image has zero size")
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat, nil
}
