package system

import (
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ignition"
	"github.com/rs/zerolog"
)

// PipelineOptions configures NewPipeline.
type PipelineOptions struct {
	Input   InputSource
	Cursor  ignition.Cursor
	Sinks   []EventSink
	ScreenW float64
	ScreenH float64
	Log     zerolog.Logger
}

// Pipeline is the per-tick system order: camera, input, binding, match
// step, overlap, contact dispatch, candle reset, journal.
type Pipeline struct {
	Camera    *CameraSystem
	Overlap   *OverlapSystem
	Scheduler *ecs.Scheduler
}

func NewPipeline(opts PipelineOptions) *Pipeline {
	p := &Pipeline{
		Camera:  NewCameraSystem(opts.ScreenW, opts.ScreenH),
		Overlap: NewOverlapSystem(opts.Log),
	}
	p.Scheduler = ecs.NewScheduler(
		p.Camera,
		NewInputSystem(opts.Input),
		NewBindingSystem(opts.Cursor, opts.Log),
		NewMatchStepSystem(),
		p.Overlap,
		NewContactSystem(),
		NewCandleResetSystem(),
		NewJournalSystem(opts.Log, opts.Sinks...),
	)
	return p
}

// Tick advances the world by dt seconds.
func (p *Pipeline) Tick(w *ecs.World, dt float64) {
	w.Update(p.Scheduler, dt)
}
