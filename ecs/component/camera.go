package component

import "github.com/milk9111/matchstrike/ignition"

// Camera maps screen pixels to world units. PosX/PosY is the world point at
// the center of the screen; Zoom is pixels per world unit.
type Camera struct {
	PosX    float64
	PosY    float64
	Zoom    float64
	ScreenW float64
	ScreenH float64
}

var CameraComponent = NewComponent[Camera]()

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	if c.Zoom == 0 {
		return c.PosX, c.PosY
	}
	viewW := c.ScreenW / c.Zoom
	viewH := c.ScreenH / c.Zoom
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

// WorldPosition implements ignition.PointerProvider.
func (c *Camera) WorldPosition(screen ignition.Point, planeOffset float64) ignition.Point {
	left, top := c.ViewTopLeft()
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return ignition.Point{X: left + screen.X/zoom, Y: top + screen.Y/zoom, Z: planeOffset}
}

// WorldToScreen is the inverse of WorldPosition on the XY plane.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return (x - left) * zoom, (y - top) * zoom
}
