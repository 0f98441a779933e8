package strip

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

var fourWide = Geometry{ViewportWidth: 640, ViewportHeight: 400, ImageWidth: 640, ImageCount: 4}

func TestGeometryClamp(t *testing.T) {
	if got := fourWide.MaxNegativeX(); got != -1920 {
		t.Fatalf("MaxNegativeX = %d, want -1920", got)
	}

	cases := []struct {
		name string
		in   int
		want int
	}{
		{"past_left_bound", -3000, -1920},
		{"past_right_bound", 50, 0},
		{"inside", -700, -700},
		{"left_edge", -1920, -1920},
		{"right_edge", 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := fourWide.Clamp(c.in); got != c.want {
				t.Fatalf("Clamp(%d) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestGeometryNarrowStrip(t *testing.T) {
	g := Geometry{ViewportWidth: 640, ViewportHeight: 400, ImageWidth: 200, ImageCount: 2}
	if got := g.MaxNegativeX(); got != 0 {
		t.Fatalf("MaxNegativeX = %d, want 0", got)
	}
	if got := g.Clamp(-100); got != 0 {
		t.Fatalf("Clamp(-100) = %d, want 0", got)
	}
}

func TestPlacements(t *testing.T) {
	got := Placements(-700, 4, fourWide)
	want := []Placement{
		{Index: 0, Dst: image.Rect(-700, 0, -60, 400)},
		{Index: 1, Dst: image.Rect(-60, 0, 580, 400)},
		{Index: 2, Dst: image.Rect(580, 0, 1220, 400)},
		{Index: 3, Dst: image.Rect(1220, 0, 1860, 400)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Placements mismatch (-want +got):\n%s", diff)
	}

	again := Placements(-700, 4, fourWide)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Fatalf("Placements not deterministic:\n%s", diff)
	}

	visible := 0
	for _, p := range got {
		if fourWide.Visible(p) {
			visible++
		}
	}
	if visible != 2 {
		t.Fatalf("visible = %d, want 2", visible)
	}

	if Placements(0, 0, fourWide) != nil {
		t.Fatalf("expected no placements for empty strip")
	}
}

type recorder struct {
	draws   []int
	commits []int
}

func (r *recorder) redraw(x int) { r.draws = append(r.draws, x) }
func (r *recorder) commit(x int) { r.commits = append(r.commits, x) }

func press(x int) Event {
	return Event{Kind: EventPress, Button: ButtonPrimary, X: x, Inside: true}
}

func TestControllerDragSession(t *testing.T) {
	l := NewListeners()
	r := &recorder{}
	c := NewController(l, fourWide, 0, r.redraw, r.commit)

	if l.Count(EventMove) != 0 || l.Count(EventRelease) != 0 {
		t.Fatalf("move/release listeners attached before drag")
	}

	l.Dispatch(press(300))
	if c.State() != StateDragging {
		t.Fatalf("state = %v, want dragging", c.State())
	}
	if l.Count(EventMove) != 1 || l.Count(EventRelease) != 1 {
		t.Fatalf("expected one move and one release listener during drag")
	}

	l.Dispatch(Event{Kind: EventMove, X: 100})
	l.Dispatch(Event{Kind: EventMove, X: -5000})
	l.Dispatch(Event{Kind: EventMove, X: 900})
	l.Dispatch(Event{Kind: EventRelease, X: 900})

	if diff := cmp.Diff([]int{-200, -1920, 0}, r.draws); diff != "" {
		t.Fatalf("redraw offsets (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, r.commits); diff != "" {
		t.Fatalf("commits (-want +got):\n%s", diff)
	}
	if c.State() != StateIdle {
		t.Fatalf("state = %v, want idle", c.State())
	}
	if l.Count(EventMove) != 0 || l.Count(EventRelease) != 0 {
		t.Fatalf("listeners leaked after release")
	}
}

func TestControllerCarriesOffsetAcrossSessions(t *testing.T) {
	l := NewListeners()
	r := &recorder{}
	c := NewController(l, fourWide, 0, r.redraw, r.commit)

	l.Dispatch(press(500))
	l.Dispatch(Event{Kind: EventMove, X: 100})
	l.Dispatch(Event{Kind: EventRelease})

	l.Dispatch(press(200))
	l.Dispatch(Event{Kind: EventMove, X: 150})
	l.Dispatch(Event{Kind: EventRelease})

	if diff := cmp.Diff([]int{-400, -450}, r.commits); diff != "" {
		t.Fatalf("commits (-want +got):\n%s", diff)
	}
	if c.Offset() != -450 {
		t.Fatalf("offset = %d, want -450", c.Offset())
	}
	if l.Count(EventMove) != 0 || l.Count(EventRelease) != 0 {
		t.Fatalf("listeners leaked across sessions")
	}
}

func TestControllerIgnoresPresses(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
	}{
		{"secondary_button", Event{Kind: EventPress, Button: ButtonSecondary, X: 10, Inside: true}},
		{"middle_button", Event{Kind: EventPress, Button: ButtonMiddle, X: 10, Inside: true}},
		{"outside_canvas", Event{Kind: EventPress, Button: ButtonPrimary, X: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewListeners()
			r := &recorder{}
			c := NewController(l, fourWide, 0, r.redraw, r.commit)

			l.Dispatch(tc.ev)
			l.Dispatch(Event{Kind: EventMove, X: -300})
			l.Dispatch(Event{Kind: EventRelease})

			if c.State() != StateIdle || c.Offset() != 0 {
				t.Fatalf("state=%v offset=%d, want idle at 0", c.State(), c.Offset())
			}
			if len(r.draws) != 0 || len(r.commits) != 0 {
				t.Fatalf("unexpected callbacks: draws=%v commits=%v", r.draws, r.commits)
			}
		})
	}
}

func TestControllerDoublePressDoesNotDoubleAttach(t *testing.T) {
	l := NewListeners()
	NewController(l, fourWide, 0, nil, nil)

	l.Dispatch(press(10))
	l.Dispatch(press(20))
	if l.Count(EventMove) != 1 {
		t.Fatalf("move listeners = %d, want 1", l.Count(EventMove))
	}
	l.Dispatch(Event{Kind: EventRelease})
	if l.Count(EventMove) != 0 {
		t.Fatalf("move listeners leaked")
	}
}

func TestControllerOffsetAlwaysInBounds(t *testing.T) {
	l := NewListeners()
	c := NewController(l, fourWide, 0, nil, nil)

	l.Dispatch(press(0))
	for x := -5000; x <= 5000; x += 137 {
		l.Dispatch(Event{Kind: EventMove, X: x})
		if off := c.Offset(); off < fourWide.MaxNegativeX() || off > 0 {
			t.Fatalf("offset %d out of bounds after move to %d", off, x)
		}
	}
	l.Dispatch(Event{Kind: EventRelease})
}

func TestControllerSetGeometryReclamps(t *testing.T) {
	l := NewListeners()
	r := &recorder{}
	c := NewController(l, fourWide, -1900, r.redraw, nil)

	c.SetGeometry(Geometry{ViewportWidth: 640, ViewportHeight: 400, ImageWidth: 640, ImageCount: 2})
	if c.Offset() != -640 {
		t.Fatalf("offset = %d, want -640", c.Offset())
	}

	c.SetOffset(25)
	if diff := cmp.Diff([]int{-640, 0}, r.draws); diff != "" {
		t.Fatalf("redraws (-want +got):\n%s", diff)
	}

	c.Detach()
	if l.Count(EventPress) != 0 {
		t.Fatalf("press listener left after Detach")
	}
}

func TestListenersRemoveDuringDispatch(t *testing.T) {
	l := NewListeners()
	calls := 0
	var h Handle
	h = l.On(EventMove, func(Event) {
		calls++
		h.Remove()
	})
	l.On(EventMove, func(Event) { calls++ })

	l.Dispatch(Event{Kind: EventMove})
	l.Dispatch(Event{Kind: EventMove})

	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if l.Count(EventMove) != 1 {
		t.Fatalf("count = %d, want 1", l.Count(EventMove))
	}
	h.Remove()
	if l.Count(EventMove) != 1 {
		t.Fatalf("double Remove dropped another listener")
	}
}

func encodePNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoadImages(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	fsys := fstest.MapFS{
		"a.png":   {Data: encodePNG(t, red)},
		"b.png":   {Data: encodePNG(t, blue)},
		"bad.png": {Data: []byte("not a png")},
	}

	t.Run("order_preserved", func(t *testing.T) {
		imgs, err := LoadImages(context.Background(), fsys, []string{"b.png", "a.png"})
		if err != nil {
			t.Fatalf("LoadImages: %v", err)
		}
		if len(imgs) != 2 {
			t.Fatalf("len = %d, want 2", len(imgs))
		}
		if _, _, b, _ := imgs[0].At(0, 0).RGBA(); b == 0 {
			t.Fatalf("first image should be blue")
		}
		if r, _, _, _ := imgs[1].At(0, 0).RGBA(); r == 0 {
			t.Fatalf("second image should be red")
		}
	})

	t.Run("missing_fails_batch", func(t *testing.T) {
		imgs, err := LoadImages(context.Background(), fsys, []string{"a.png", "nope.png"})
		if err == nil || imgs != nil {
			t.Fatalf("expected batch failure, got imgs=%v err=%v", imgs, err)
		}
		if !strings.Contains(err.Error(), "nope.png") {
			t.Fatalf("error should name the path: %v", err)
		}
	})

	t.Run("undecodable_fails_batch", func(t *testing.T) {
		_, err := LoadImages(context.Background(), fsys, []string{"bad.png", "a.png"})
		if err == nil || !strings.Contains(err.Error(), "decode bad.png") {
			t.Fatalf("expected decode error, got %v", err)
		}
	})

	t.Run("empty_list", func(t *testing.T) {
		imgs, err := LoadImages(context.Background(), fsys, nil)
		if err != nil || len(imgs) != 0 {
			t.Fatalf("imgs=%v err=%v", imgs, err)
		}
	})
}
