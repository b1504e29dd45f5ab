package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/matchstrike/config"
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/entity"
	"github.com/milk9111/matchstrike/ecs/render"
	"github.com/milk9111/matchstrike/ecs/system"
	"github.com/milk9111/matchstrike/prefabs"
	"github.com/rs/zerolog"
)

type Game struct {
	settings config.Settings
	log      zerolog.Logger

	input    *deviceInput
	sinks    []system.EventSink
	world    *ecs.World
	pipeline *system.Pipeline
	scene    *entity.Scene
	renderer *render.Renderer
	hud      *hud
	watcher  *prefabs.Watcher

	screenW, screenH float64
}

func NewGame(settings config.Settings, log zerolog.Logger, sinks ...system.EventSink) (*Game, error) {
	g := &Game{
		settings: settings,
		log:      log,
		input:    newDeviceInput(),
		sinks:    sinks,
		renderer: render.NewRenderer(),
		screenW:  float64(settings.Window.Width),
		screenH:  float64(settings.Window.Height),
	}
	g.renderer.Debug = settings.Debug
	g.hud = newHUD(g.input)

	if err := g.loadScene(); err != nil {
		return nil, err
	}

	if settings.HotReload && prefabs.Dir() != "" {
		w, err := prefabs.NewWatcher(prefabs.Dir())
		if err != nil {
			log.Warn().Err(err).Str("dir", prefabs.Dir()).Msg("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

// loadScene builds a fresh world from the scene prefab. The current world is
// only replaced once the new one built cleanly.
func (g *Game) loadScene() error {
	world := ecs.NewWorld()
	pipeline := system.NewPipeline(system.PipelineOptions{
		Input:   g.input,
		Cursor:  ebitenCursor{},
		Sinks:   g.sinks,
		ScreenW: g.screenW,
		ScreenH: g.screenH,
		Log:     g.log,
	})

	scene, err := entity.BuildScene(world, g.settings.Scene, g.screenW, g.screenH, g.log)
	if err != nil {
		return err
	}

	if g.world != nil {
		system.Shutdown(g.world)
	}
	g.world, g.pipeline, g.scene = world, pipeline, scene
	g.log.Info().Str("scene", scene.Name).Int("candles", len(scene.Candles)).Msg("scene loaded")
	return nil
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Changed()
	if len(changed) == 0 {
		return
	}
	g.log.Info().Strs("files", changed).Msg("prefabs changed, rebuilding scene")
	if err := g.loadScene(); err != nil {
		g.log.Error().Err(err).Msg("scene reload failed, keeping the current scene")
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.renderer.Debug = !g.renderer.Debug
	}

	g.reload()
	g.hud.ui.Update()
	g.pipeline.Tick(g.world, 1.0/float64(ebiten.TPS()))
	g.hud.refresh(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.renderer.Debug {
		render.DrawPhysicsDebug(g.pipeline.Overlap.Space(), g.world, screen)
		render.DrawMatchDebug(g.world, screen)
	}
	g.hud.ui.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	g.pipeline.Camera.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close restores the cursor and stops the watcher.
func (g *Game) Close() {
	if g.world != nil {
		system.Shutdown(g.world)
	}
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn().Err(err).Msg("close prefab watcher")
		}
	}
}
