package main

import (
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ecs/system"
	"github.com/milk9111/matchstrike/ignition"
)

// scriptBuilder appends pointer frames in world units and converts them to
// screen pixels through the scene camera.
type scriptBuilder struct {
	cam    *component.Camera
	frames []component.Input
	at     ignition.Point
}

func newScriptBuilder(cam *component.Camera, start ignition.Point) *scriptBuilder {
	return &scriptBuilder{cam: cam, at: start}
}

func (b *scriptBuilder) frame(p ignition.Point, held bool) {
	x, y := b.cam.WorldToScreen(p.X, p.Y)
	b.frames = append(b.frames, component.Input{PointerX: x, PointerY: y, Held: held})
	b.at = p
}

// moveTo walks the pointer in a straight line, step world units per tick.
func (b *scriptBuilder) moveTo(to ignition.Point, step float64, held bool) {
	from := b.at
	dist := to.Sub(from).Len()
	if dist == 0 || step <= 0 {
		b.frame(to, held)
		return
	}
	n := int(dist/step) + 1
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		b.frame(ignition.Point{X: from.X + (to.X-from.X)*t, Y: from.Y + (to.Y-from.Y)*t}, held)
	}
}

func (b *scriptBuilder) hold(ticks int, held bool) {
	for i := 0; i < ticks; i++ {
		b.frame(b.at, held)
	}
}

func (b *scriptBuilder) input() *system.ScriptedInput {
	return &system.ScriptedInput{Frames: b.frames}
}

type scriptOptions struct {
	Sweeps    int
	Step      float64
	HoldTicks int
}

// strikeAndLight sweeps the match across the first striker, carries it to
// each candle's wick zone and holds it there.
func strikeAndLight(cam *component.Camera, sweepFrom, sweepTo ignition.Point, zones []ignition.Point, opts scriptOptions) *system.ScriptedInput {
	b := newScriptBuilder(cam, sweepFrom)
	b.hold(2, false)
	b.moveTo(sweepFrom, opts.Step, true)
	for i := 0; i < opts.Sweeps; i++ {
		b.moveTo(sweepTo, opts.Step, true)
		b.moveTo(sweepFrom, opts.Step, true)
	}
	for _, z := range zones {
		b.moveTo(z, opts.Step, true)
		b.hold(opts.HoldTicks, true)
	}
	b.hold(1, false)
	return b.input()
}

// sweepBounds returns the inner span of a striker box along X.
func sweepBounds(w float64, t *component.Transform) (ignition.Point, ignition.Point) {
	half := w * abs(t.ScaleX) / 2
	margin := half * 0.1
	return ignition.Point{X: t.X - half + margin, Y: t.Y}, ignition.Point{X: t.X + half - margin, Y: t.Y}
}

// zoneCenter returns a wick zone's world position.
func zoneCenter(t *component.Transform) ignition.Point {
	return ignition.Point{X: t.X, Y: t.Y}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
