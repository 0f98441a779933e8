package strip

import "image"

type Surface interface {
	Clear()
	Paint(index int, dst image.Rectangle)
}

// Renderer repaints the strip for an offset. Nothing is painted until a
// non-empty image set is loaded.
type Renderer struct {
	geom    Geometry
	count   int
	surface Surface
}

func NewRenderer(s Surface, g Geometry) *Renderer {
	return &Renderer{geom: g, surface: s}
}

func (r *Renderer) SetGeometry(g Geometry) {
	r.geom = g
}

func (r *Renderer) SetCount(n int) {
	r.count = n
	if n == 0 {
		r.surface.Clear()
	}
}

func (r *Renderer) Loaded() bool {
	return r.count > 0
}

func (r *Renderer) Redraw(offset int) {
	if r.count == 0 {
		return
	}
	r.surface.Clear()
	for _, p := range Placements(offset, r.count, r.geom) {
		r.surface.Paint(p.Index, p.Dst)
	}
}
