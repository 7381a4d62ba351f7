package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose primary ray hit a surface
	Rays        RayCounts     // Rays traced, by kind
	Workers     int           // Number of goroutines used
	Elapsed     time.Duration // Wall-clock render time
}

// Coverage returns the fraction of pixels that hit a surface
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

// TotalRays returns the number of rays of every kind
func (s RenderStats) TotalRays() int64 {
	return s.Rays.Primary + s.Rays.Shadow + s.Rays.Reflection + s.Rays.Transmission
}

// RowResult is what a worker reports for one rendered row
type RowResult struct {
	Hits   int       // Pixels in the row whose primary ray hit a surface
	Counts RayCounts // Rays traced for the row
}
