package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ignition"
	"github.com/rs/zerolog"
)

const (
	collisionTypeHead cp.CollisionType = iota + 1
	collisionTypeRegion
)

const fallbackStep = 1.0 / 60.0

// OverlapSystem mirrors match heads and regions into a Chipmunk space and
// reports, per head, which regions it entered, stayed in and exited this
// tick. Nothing in the space is ever pushed: regions are sensors and the
// head body has no gravity and is repositioned every tick.
type OverlapSystem struct {
	space         *cp.Space
	handlersReady bool
	log           zerolog.Logger

	entities map[ecs.Entity]*bodyInfo
	heads    map[*cp.Shape]ecs.Entity
	regions  map[*cp.Shape]ecs.Entity

	current  map[ecs.Entity]map[ecs.Entity]struct{}
	previous map[ecs.Entity]map[ecs.Entity]struct{}
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewOverlapSystem(log zerolog.Logger) *OverlapSystem {
	return &OverlapSystem{
		space:    cp.NewSpace(),
		log:      log.With().Str("component", "overlap").Logger(),
		entities: make(map[ecs.Entity]*bodyInfo),
		heads:    make(map[*cp.Shape]ecs.Entity),
		regions:  make(map[*cp.Shape]ecs.Entity),
		current:  make(map[ecs.Entity]map[ecs.Entity]struct{}),
		previous: make(map[ecs.Entity]map[ecs.Entity]struct{}),
	}
}

func (s *OverlapSystem) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

func (s *OverlapSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	s.ensureHandlers()
	s.cleanupEntities(w)
	s.syncEntities(w)
	s.moveHeads(w)

	s.current = make(map[ecs.Entity]map[ecs.Entity]struct{}, len(s.previous))
	step := w.DeltaTime()
	if step <= 0 {
		step = fallbackStep
	}
	s.space.Step(step)

	s.flushOverlaps(w)
	s.previous = s.current
}

func (s *OverlapSystem) ensureHandlers() {
	if s.handlersReady {
		return
	}

	handler := s.space.NewCollisionHandler(collisionTypeHead, collisionTypeRegion)
	handler.UserData = s
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*OverlapSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		head, okA := sys.heads[shapeA]
		region, okB := sys.regions[shapeB]
		if !okA || !okB {
			head, okA = sys.heads[shapeB]
			region, okB = sys.regions[shapeA]
			if !okA || !okB {
				return true
			}
		}

		set := sys.current[head]
		if set == nil {
			set = make(map[ecs.Entity]struct{})
			sys.current[head] = set
		}
		set[region] = struct{}{}
		return true
	}

	s.handlersReady = true
}

func (s *OverlapSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if info, ok := s.entities[e]; ok {
			if !info.static && info.shape.Sensor() != body.Sensor {
				info.shape.SetSensor(body.Sensor)
			}
			return
		}

		isHead := ecs.Has(w, e, component.MatchControllerComponent.Kind())
		filter := cp.SHAPE_FILTER_ALL
		if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
			filter = layer.Filter()
		}

		info := s.createBody(body, t, isHead)
		if info == nil {
			s.log.Warn().Str("entity", labelOf(w, e)).Msg("collider has no size, skipping")
			return
		}
		info.shape.SetFilter(filter)
		body.Body = info.body
		body.Shape = info.shape
		s.entities[e] = info
		if isHead {
			s.heads[info.shape] = e
		} else {
			s.regions[info.shape] = e
		}
	})
}

func (s *OverlapSystem) createBody(bodyComp *component.PhysicsBody, t *component.Transform, isHead bool) *bodyInfo {
	scaleX, scaleY := t.ScaleX, t.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	radius := ignition.GizmoRadius(bodyComp.Radius, scaleX, scaleY)
	width := bodyComp.Width * math.Abs(scaleX)
	height := bodyComp.Height * math.Abs(scaleY)
	if radius <= 0 && (width <= 0 || height <= 0) {
		return nil
	}
	center := cp.Vector{X: t.X + bodyComp.OffsetX*scaleX, Y: t.Y + bodyComp.OffsetY*scaleY}

	if !isHead {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(s.space.StaticBody, radius, center)
		} else {
			bb := cp.BB{L: center.X - width/2, B: center.Y - height/2, R: center.X + width/2, T: center.Y + height/2}
			shape = cp.NewBox2(s.space.StaticBody, bb, 0)
		}
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeRegion)
		s.space.AddShape(shape)
		return &bodyInfo{body: s.space.StaticBody, shape: shape, static: true}
	}

	const mass = 1.0
	var moment float64
	if radius > 0 {
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	} else {
		moment = cp.MomentForBox(mass, width, height)
	}
	body := cp.NewBody(mass, moment)
	body.SetPosition(center)
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(collisionTypeHead)

	s.space.AddBody(body)
	s.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (s *OverlapSystem) moveHeads(w *ecs.World) {
	for _, e := range s.heads {
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || body.Body == nil {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		body.Body.SetPosition(cp.Vector{X: t.X + body.OffsetX, Y: t.Y + body.OffsetY})
		body.Body.SetVelocityVector(cp.Vector{})
		body.Body.SetAngularVelocity(0)
	}
}

func (s *OverlapSystem) flushOverlaps(w *ecs.World) {
	for _, head := range s.heads {
		now := s.current[head]
		before := s.previous[head]

		ov := &component.Overlaps{}
		for region := range now {
			ov.Stayed = append(ov.Stayed, uint64(region))
			if _, ok := before[region]; !ok {
				ov.Entered = append(ov.Entered, uint64(region))
			}
		}
		for region := range before {
			if _, ok := now[region]; !ok {
				ov.Exited = append(ov.Exited, uint64(region))
			}
		}
		sortIDs(ov.Entered)
		sortIDs(ov.Stayed)
		sortIDs(ov.Exited)

		if err := ecs.Add(w, head, component.OverlapsComponent.Kind(), ov); err != nil {
			s.log.Error().Err(err).Str("entity", head.String()).Msg("store overlaps")
		}
	}
}

func (s *OverlapSystem) cleanupEntities(w *ecs.World) {
	for e, info := range s.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		if info.shape != nil {
			s.space.RemoveShape(info.shape)
			delete(s.heads, info.shape)
			delete(s.regions, info.shape)
		}
		if info.body != nil && !info.static {
			s.space.RemoveBody(info.body)
		}
		delete(s.entities, e)
		delete(s.previous, e)
	}
}

func sortIDs(ids []uint64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
