package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ignition"
	"golang.org/x/image/colornames"
)

const matchStickLength = 0.6

type Renderer struct {
	camEntity ecs.Entity
	// Debug draws collider outlines and wick zone gizmos.
	Debug bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) camera(w *ecs.World) *component.Camera {
	if !r.camEntity.Valid() || !ecs.IsAlive(w, r.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return nil
		}
		r.camEntity = camEntity
	}
	cam, _ := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	return cam
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	cam := r.camera(w)
	if cam == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)

	entities := ecs.Entities(w)
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(w, entities[i]), layerOf(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		r.drawStriker(w, e, t, cam, screen)
		r.drawCandle(w, e, t, cam, screen)
		r.drawMatch(w, e, t, cam, screen)
		r.drawFlame(w, e, t, cam, screen)
	}

	if r.Debug {
		r.drawGizmos(w, cam, screen)
	}
}

func (r *Renderer) drawStriker(w *ecs.World, e ecs.Entity, t *component.Transform, cam *component.Camera, screen *ebiten.Image) {
	if !ecs.Has(w, e, component.StrikeSurfaceComponent.Kind()) {
		return
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	fillBox(screen, cam, t, body.Width, body.Height, body.OffsetX, body.OffsetY, tintOf(w, e, colornames.Saddlebrown))
}

func (r *Renderer) drawCandle(w *ecs.World, e ecs.Entity, t *component.Transform, cam *component.Camera, screen *ebiten.Image) {
	if !ecs.Has(w, e, component.CandleComponent.Kind()) {
		return
	}
	shape, ok := ecs.Get(w, e, component.BodyShapeComponent.Kind())
	if !ok {
		return
	}
	fillBox(screen, cam, t, shape.Width, shape.Height, shape.OffsetX, shape.OffsetY, tintOf(w, e, colornames.Ivory))
}

func (r *Renderer) drawMatch(w *ecs.World, e ecs.Entity, t *component.Transform, cam *component.Camera, screen *ebiten.Image) {
	mc, ok := ecs.Get(w, e, component.MatchControllerComponent.Kind())
	if !ok || mc.Match == nil {
		return
	}
	hx, hy := cam.WorldToScreen(t.X, t.Y)
	tx, ty := cam.WorldToScreen(t.X+matchStickLength*0.5, t.Y+matchStickLength)
	vector.StrokeLine(screen, float32(hx), float32(hy), float32(tx), float32(ty), float32(0.06*cam.Zoom), colornames.Burlywood, true)

	head := colornames.Firebrick
	if mc.Match.State() == ignition.BurnedOut {
		head = colornames.Dimgray
	}
	radius := 0.1
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Radius > 0 {
		radius = body.Radius
	}
	vector.FillCircle(screen, float32(hx), float32(hy), float32(radius*cam.Zoom), head, true)
}

func (r *Renderer) drawFlame(w *ecs.World, e ecs.Entity, t *component.Transform, cam *component.Camera, screen *ebiten.Image) {
	f, ok := ecs.Get(w, e, component.FlameComponent.Kind())
	if !ok || !f.Visible || f.Radius <= 0 {
		return
	}
	var c color.Color = colornames.Orange
	if f.Color != nil {
		c = f.Color
	}
	x, y := cam.WorldToScreen(t.X+f.OffsetX*t.ScaleX, t.Y+f.OffsetY*t.ScaleY)
	radius := ignition.GizmoRadius(f.Radius, t.ScaleX, t.ScaleY) * cam.Zoom
	vector.FillCircle(screen, float32(x), float32(y), float32(radius), c, true)
	vector.FillCircle(screen, float32(x), float32(y), float32(radius*0.5), colornames.Lightyellow, true)
}

func fillBox(screen *ebiten.Image, cam *component.Camera, t *component.Transform, width, height, offX, offY float64, c color.Color) {
	if width <= 0 || height <= 0 {
		return
	}
	cx := t.X + offX*t.ScaleX
	cy := t.Y + offY*t.ScaleY
	w := width * abs(t.ScaleX)
	h := height * abs(t.ScaleY)
	x, y := cam.WorldToScreen(cx-w/2, cy-h/2)
	vector.FillRect(screen, float32(x), float32(y), float32(w*cam.Zoom), float32(h*cam.Zoom), c, false)
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func tintOf(w *ecs.World, e ecs.Entity, fallback color.Color) color.Color {
	if tint, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok && tint.Color != nil {
		return tint.Color
	}
	return fallback
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
