package strip

import (
	"image"

	"github.com/milk9111/dragstrip/common"
)

type Geometry struct {
	ViewportWidth  int
	ViewportHeight int
	ImageWidth     int
	ImageCount     int
}

func (g Geometry) TotalWidth() int {
	return g.ImageCount * g.ImageWidth
}

// MaxNegativeX is the leftmost offset the strip may be panned to. A strip
// that fits inside the viewport cannot be panned at all.
func (g Geometry) MaxNegativeX() int {
	m := -(g.TotalWidth() - g.ViewportWidth)
	if m > 0 {
		return 0
	}
	return m
}

func (g Geometry) Clamp(x int) int {
	return common.Clamp(x, g.MaxNegativeX(), 0)
}

func (g Geometry) Viewport() image.Rectangle {
	return image.Rect(0, 0, g.ViewportWidth, g.ViewportHeight)
}

type Placement struct {
	Index int
	Dst   image.Rectangle
}

// Placements puts image i at i*ImageWidth+offset, stretched to ImageWidth by
// ViewportHeight.
func Placements(offset, count int, g Geometry) []Placement {
	if count <= 0 {
		return nil
	}
	out := make([]Placement, 0, count)
	for i := 0; i < count; i++ {
		x := i*g.ImageWidth + offset
		out = append(out, Placement{
			Index: i,
			Dst:   image.Rect(x, 0, x+g.ImageWidth, g.ViewportHeight),
		})
	}
	return out
}

func (g Geometry) Visible(p Placement) bool {
	return p.Dst.Overlaps(g.Viewport())
}
