package fieldmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sort"
)

// Gray16Scale maps an intensity of 1 to a Gray16 pixel value in the data
// images, leaving headroom for the focusing of a beam above its source peak.
const Gray16Scale = 4000

func checkRect(m [][]float64) (h, w int, err error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return 0, 0, errors.New("empty matrix")
	}
	h = len(m)
	w = len(m[0])
	for y := 1; y < h; y++ {
		if len(m[y]) != w {
			return 0, 0, errors.New("ragged matrix")
		}
	}
	return h, w, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// MatrixToGray16Data converts a matrix to a Gray16 image with a fixed
// physical scaling, Y16 = round(v * scale) clamped to [0, 65535]. Non-finite
// values are written as 0.
func MatrixToGray16Data(m [][]float64, scale float64) (*image.Gray16, error) {
	h, w, err := checkRect(m)
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, errors.New("scale must be > 0")
	}

	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := m[y][x]
			if !finite(v) {
				continue
			}
			u := math.Min(math.Max(math.Round(v*scale), 0), 65535)
			img.SetGray16(x, y, color.Gray16{Y: uint16(u)})
		}
	}
	return img, nil
}

// MatrixToGrayViewPercentile converts a matrix to an 8 bit view image,
// stretching the pLow to pHigh percentile range onto 0..255. The percentile
// stretch keeps a few hot pixels from washing out the rest of the map.
func MatrixToGrayViewPercentile(m [][]float64, pLow, pHigh float64) (*image.Gray, error) {
	h, w, err := checkRect(m)
	if err != nil {
		return nil, err
	}
	if !(0 <= pLow && pLow < pHigh && pHigh <= 100) {
		return nil, errors.New("percentiles must satisfy 0 <= pLow < pHigh <= 100")
	}

	vals := make([]float64, 0, h*w)
	for _, row := range m {
		for _, v := range row {
			if finite(v) {
				vals = append(vals, v)
			}
		}
	}
	if len(vals) == 0 {
		return nil, errors.New("matrix has no finite values")
	}
	sort.Float64s(vals)

	percentile := func(p float64) float64 {
		pos := (p / 100.0) * float64(len(vals)-1)
		i := int(math.Floor(pos))
		if i >= len(vals)-1 {
			return vals[len(vals)-1]
		}
		f := pos - float64(i)
		return vals[i]*(1-f) + vals[i+1]*f
	}

	lo := percentile(pLow)
	hi := percentile(pHigh)
	if hi == lo {
		hi = lo + 1 // constant image
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			v := m[y][x]
			if !finite(v) {
				continue
			}
			t := math.Min(math.Max((v-lo)/(hi-lo), 0), 1)
			img.Pix[row+x] = uint8(math.Round(t * 255.0))
		}
	}
	return img, nil
}

// LoadGray16PNG loads a 16 bit grayscale PNG as written by MatrixToGray16Data
// and returns pixelValue / scale for every pixel.
func LoadGray16PNG(filename string, scale float64) (matrix [][]float64, err error) {
	img, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	matrix = make([][]float64, bounds.Dy())
	for y := range matrix {
		matrix[y] = make([]float64, bounds.Dx())
		for x := range matrix[y] {
			gray := color.Gray16Model.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray16)
			matrix[y][x] = float64(gray.Y) / scale
		}
	}
	return matrix, nil
}

// DrawCutOnImage returns a color copy of img with the cut from pixel (x0, y0)
// to (x1, y1) drawn as a red line, with a red dot at the start and a green
// dot at the end.
func DrawCutOnImage(img image.Image, x0, y0, x1, y1 float64) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	drawLine(result, x0, y0, x1, y1, color.RGBA{R: 255, A: 255})
	drawDot(result, x0, y0, 3, color.RGBA{R: 255, A: 255})
	drawDot(result, x1, y1, 3, color.RGBA{G: 255, A: 255})
	return result
}

// PixelOf converts a position on grid g to fractional pixel coordinates of
// the images made from maps on that grid.
func (g Grid) PixelOf(x, y float64) (px, py float64) {
	return (x - g.XMin) / g.Dx(), (y - g.YMin) / g.Dy()
}

// drawLine stamps a disc of radius 1 at every pixel step from (x0, y0) to
// (x1, y1).
func drawLine(img *image.RGBA, x0, y0, x1, y1 float64, col color.Color) {
	n := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		drawDot(img, x0+t*(x1-x0), y0+t*(y1-y0), 1, col)
	}
}

func drawDot(img *image.RGBA, cx, cy float64, radius int, col color.Color) {
	px, py := int(math.Round(cx)), int(math.Round(cy))
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				setInside(img, px+x, py+y, col)
			}
		}
	}
}

func setInside(img *image.RGBA, x, y int, col color.Color) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.Set(x, y, col)
	}
}

// LoadImage decodes a PNG file.
func LoadImage(filename string) (img image.Image, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	img, err = png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return img, nil
}

// SaveImage writes img to a PNG file.
func SaveImage(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}
