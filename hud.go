package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"golang.org/x/image/font/basicfont"
)

type hud struct {
	ui     *ebitenui.UI
	status *widget.Text
}

// newHUD builds the corner panel with the match readout and the reset
// buttons. Buttons queue resets on the input so they land inside a tick.
func newHUD(input *deviceInput) *hud {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 160})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	status := widget.NewText(
		widget.TextOpts.Text("match: unlit", &face, white),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(status)
	panel.AddChild(button("Reset match (R)", input.QueueMatchReset))
	panel.AddChild(button("Reset candles (C)", input.QueueCandleReset))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	return &hud{ui: &ebitenui.UI{Container: root}, status: status}
}

// refresh updates the readout from the world.
func (h *hud) refresh(w *ecs.World) {
	lit, total := 0, 0
	ecs.ForEach(w, component.CandleComponent.Kind(), func(_ ecs.Entity, c *component.Candle) {
		total++
		if c.Wick.Lit() {
			lit++
		}
	})

	state := "none"
	if e, ok := ecs.First(w, component.MatchControllerComponent.Kind()); ok {
		if mc, ok := ecs.Get(w, e, component.MatchControllerComponent.Kind()); ok && mc.Match != nil {
			state = mc.Match.State().String()
		}
	}
	h.status.Label = fmt.Sprintf("match: %s\ncandles lit: %d/%d", state, lit, total)
}
