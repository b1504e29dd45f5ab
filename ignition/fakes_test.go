package ignition

type fakeVisual struct {
	visible bool
	shows   int
	hides   int
}

func (v *fakeVisual) Show() {
	v.visible = true
	v.shows++
}

func (v *fakeVisual) Hide() {
	v.visible = false
	v.hides++
}

type identityPointer struct{}

func (identityPointer) WorldPosition(screen Point, planeOffset float64) Point {
	return Point{X: screen.X, Y: screen.Y, Z: planeOffset}
}

type fakeRegion struct {
	name    string
	striker bool
	zone    *HeatZone
}

func (r fakeRegion) Name() string          { return r.name }
func (r fakeRegion) IsStrikeSurface() bool { return r.striker }
func (r fakeRegion) HeatZone() *HeatZone   { return r.zone }

type fakeCursor struct {
	visible bool
	sets    int
}

func (c *fakeCursor) Visible() bool { return c.visible }

func (c *fakeCursor) SetVisible(v bool) {
	c.visible = v
	c.sets++
}
