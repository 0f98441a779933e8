package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// NewHUD builds the debug overlay pinned to the bottom-left corner and
// returns a setter for its text.
func NewHUD() (*ebitenui.UI, func(string)) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 170})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	label := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 6, Right: 6}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionEnd}),
		),
	)
	panel.AddChild(label)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	ui := &ebitenui.UI{Container: root}
	return ui, func(s string) { label.Label = s }
}

func hudStatus(g *Game) string {
	geom := g.controller.Geometry()
	status := "loaded"
	switch {
	case g.gallery.Pending():
		status = "loading"
	case g.gallery.Err() != nil:
		status = "failed"
	}
	return fmt.Sprintf("%s  x=%d  committed=%d  range=[%d, 0]  images=%s (%d)",
		g.controller.State(), g.controller.Offset(), g.x, geom.MaxNegativeX(), status, len(g.gallery.Images()))
}
