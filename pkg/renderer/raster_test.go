package renderer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestRaster_SetAt(t *testing.T) {
	r := NewRaster(3, 2)
	require.Len(t, r.Pix, 6)

	r.Set(2, 1, core.NewVec3(1, 2, 3))
	assert.Equal(t, core.NewVec3(1, 2, 3), r.At(2, 1))
	assert.Equal(t, core.NewVec3(1, 2, 3), r.Pix[5])
	assert.Equal(t, core.Vec3{}, r.At(0, 0))
}

func TestRaster_ToImage(t *testing.T) {
	r := NewRaster(2, 2)
	r.Set(0, 0, core.NewVec3(255, 127.9, 0))
	r.Set(1, 0, core.NewVec3(300, -5, 0.99))
	r.Set(0, 1, core.NewVec3(51, 76.5, 102))

	img := r.ToImage()
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	// Channels truncate toward zero and clamp to the 8-bit range
	assert.Equal(t, color.RGBA{255, 127, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{51, 76, 102, 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(1, 1))
}
