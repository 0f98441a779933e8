package obj

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/dragstrip/strip"
)

// Canvas is the offscreen surface the strip is painted on. It is only
// repainted when the offset changes; Draw copies it to the screen.
type Canvas struct {
	*strip.Renderer

	geom   strip.Geometry
	off    *ebiten.Image
	images []*ebiten.Image
}

func NewCanvas(g strip.Geometry) *Canvas {
	c := &Canvas{geom: g}
	c.off = ebiten.NewImage(g.ViewportWidth, g.ViewportHeight)
	c.Renderer = strip.NewRenderer(c, g)
	return c
}

// SetGeometry updates the layout, reallocating the surface when the viewport
// size changed.
func (c *Canvas) SetGeometry(g strip.Geometry) {
	if g.ViewportWidth != c.geom.ViewportWidth || g.ViewportHeight != c.geom.ViewportHeight {
		if c.off != nil {
			c.off.Deallocate()
		}
		c.off = nil
	}
	c.geom = g
	c.Renderer.SetGeometry(g)
}

// SetImages replaces the loaded bitmaps. Passing nil unloads them and clears
// the surface.
func (c *Canvas) SetImages(imgs []image.Image) {
	for _, img := range c.images {
		img.Deallocate()
	}
	c.images = c.images[:0]
	for _, img := range imgs {
		c.images = append(c.images, ebiten.NewImageFromImage(img))
	}
	c.Renderer.SetCount(len(c.images))
}

func (c *Canvas) Clear() {
	if c.off == nil {
		c.off = ebiten.NewImage(c.geom.ViewportWidth, c.geom.ViewportHeight)
	}
	c.off.Clear()
}

func (c *Canvas) Paint(index int, dst image.Rectangle) {
	img := c.images[index]
	src := img.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	op.Filter = ebiten.FilterLinear
	c.off.DrawImage(img, op)
}

func (c *Canvas) Draw(screen *ebiten.Image) {
	if c.off == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(c.off, op)
}
