package component

import "image/color"

// Flame is the visual sink for a match head or candle wick. The renderer
// draws it when Visible.
type Flame struct {
	Visible bool
	Radius  float64
	OffsetX float64
	OffsetY float64
	Color   color.Color
}

var FlameComponent = NewComponent[Flame]()

func (f *Flame) Show() {
	if f == nil {
		return
	}
	f.Visible = true
}

func (f *Flame) Hide() {
	if f == nil {
		return
	}
	f.Visible = false
}
