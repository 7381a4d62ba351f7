package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Raster is a dense row-major buffer of RGB triples in [0,255]
type Raster struct {
	Width  int
	Height int
	Pix    []core.Vec3
}

// NewRaster allocates a black raster
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (r *Raster) At(x, y int) core.Vec3 {
	return r.Pix[y*r.Width+x]
}

// Set stores the color of pixel (x, y)
func (r *Raster) Set(x, y int, c core.Vec3) {
	r.Pix[y*r.Width+x] = c
}

// ToImage converts the raster to an 8-bit image. Channels are clamped to
// [0,255] and truncated toward zero.
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := r.At(x, y).Clamp(0, 255)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c.X),
				G: uint8(c.Y),
				B: uint8(c.Z),
				A: 255,
			})
		}
	}
	return img
}
