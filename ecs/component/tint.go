package component

import "image/color"

// Tint is the flat fill color of a drawn body.
type Tint struct {
	Color color.Color
}

var TintComponent = NewComponent[Tint]()

// BodyShape is a drawn-only box, such as a candle body.
type BodyShape struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var BodyShapeComponent = NewComponent[BodyShape]()
