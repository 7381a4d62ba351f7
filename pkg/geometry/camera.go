package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position       core.Vec3 // Eye position
	LookAt         core.Vec3 // Point the camera looks at
	Up             core.Vec3 // Approximate up vector; need not be perpendicular to the view direction
	ScreenDistance float64   // Distance from the eye to the screen plane
	ScreenWidth    float64   // Width of the screen plane in world units
}

// Camera generates primary rays through a screen plane in front of the eye
type Camera struct {
	config       CameraConfig
	direction    core.Vec3 // Unit view direction
	right        core.Vec3 // Unit right vector
	up           core.Vec3 // Unit up vector, orthogonal to direction and right
	screenHeight float64   // Construction-time screen height
}

// NewCamera creates a camera and builds its orthonormal basis
func NewCamera(config CameraConfig) *Camera {
	direction := config.LookAt.Subtract(config.Position).Normalize()
	right := direction.Cross(config.Up).Normalize()
	up := right.Cross(direction).Normalize()

	// Default screen height before an image resolution is known
	aspectRatio := config.ScreenWidth / config.ScreenDistance
	screenHeight := config.ScreenWidth / aspectRatio

	return &Camera{
		config:       config,
		direction:    direction,
		right:        right,
		up:           up,
		screenHeight: screenHeight,
	}
}

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Position returns the eye position
func (c *Camera) Position() core.Vec3 {
	return c.config.Position
}

// Basis returns the view direction, right and up unit vectors
func (c *Camera) Basis() (direction, right, up core.Vec3) {
	return c.direction, c.right, c.up
}

// ScreenHeight returns the construction-time screen height. Rendering
// uses the height implied by the image aspect ratio instead.
func (c *Camera) ScreenHeight() float64 {
	return c.screenHeight
}

// PixelLocation returns the world position of the center of a pixel on the screen plane
func (c *Camera) PixelLocation(pixelX, pixelY, imageWidth, imageHeight int) core.Vec3 {
	// The image aspect ratio always decides the screen height
	aspectRatio := float64(imageWidth) / float64(imageHeight)
	screenHeight := c.config.ScreenWidth / aspectRatio

	ndcX := (float64(pixelX) + 0.5) / float64(imageWidth)
	ndcY := (float64(pixelY) + 0.5) / float64(imageHeight)

	// Screen y is flipped so that increasing pixel rows move down
	screenX := (ndcX - 0.5) * c.config.ScreenWidth
	screenY := (0.5 - ndcY) * screenHeight

	return c.config.Position.
		Add(c.direction.Multiply(c.config.ScreenDistance)).
		Add(c.right.Multiply(screenX)).
		Add(c.up.Multiply(screenY))
}

// GetRay generates the primary ray through a pixel center
func (c *Camera) GetRay(pixelX, pixelY, imageWidth, imageHeight int) core.Ray {
	target := c.PixelLocation(pixelX, pixelY, imageWidth, imageHeight)
	return core.NewRay(c.config.Position, target.Subtract(c.config.Position))
}
