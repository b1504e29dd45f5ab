package ignition

import (
	"math"
	"reflect"
)

// Visual is a flame sprite or particle effect that can be toggled.
type Visual interface {
	Show()
	Hide()
}

// PointerProvider maps a screen/device point to a world coordinate on the
// plane at planeOffset.
type PointerProvider interface {
	WorldPosition(screen Point, planeOffset float64) Point
}

// Region is something the match head can overlap.
type Region interface {
	Name() string
	IsStrikeSurface() bool
	// HeatZone returns the zone found on the region itself, then its
	// ancestors, then its descendants. Nil when there is none.
	HeatZone() *HeatZone
}

// Point is a world or screen coordinate.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Len returns the euclidean length of p.
func (p Point) Len() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// GizmoRadius scales a wick zone radius by the larger axis of its owner's
// scale, the same way the zone is drawn in debug mode.
func GizmoRadius(radius, scaleX, scaleY float64) float64 {
	return radius * math.Max(math.Abs(scaleX), math.Abs(scaleY))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func show(v Visual) {
	if isNil(v) {
		return
	}
	v.Show()
}

func hide(v Visual) {
	if isNil(v) {
		return
	}
	v.Hide()
}
