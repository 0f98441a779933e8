package system

import (
	"context"
	"image"
	"io/fs"
	"log"
	"slices"

	"github.com/milk9111/dragstrip/strip"
)

type LoadFunc func(ctx context.Context, fsys fs.FS, paths []string) ([]image.Image, error)

type loadResult struct {
	gen    int
	images []image.Image
	err    error
}

// Gallery owns the image set's load lifecycle. Loads run off the game loop
// and are collected by Poll from Update.
type Gallery struct {
	fsys fs.FS
	load LoadFunc

	paths   []string
	gen     int
	pending bool
	results chan loadResult

	images []image.Image
	err    error
}

func NewGallery(fsys fs.FS, load LoadFunc) *Gallery {
	if load == nil {
		load = strip.LoadImages
	}
	return &Gallery{
		fsys:    fsys,
		load:    load,
		results: make(chan loadResult, 4),
	}
}

func (g *Gallery) Request(paths []string) bool {
	if g.gen > 0 && slices.Equal(g.paths, paths) {
		return false
	}
	g.paths = slices.Clone(paths)
	g.start()
	return true
}

func (g *Gallery) Reload() {
	if g.gen == 0 {
		return
	}
	g.start()
}

func (g *Gallery) start() {
	g.gen++
	g.pending = true
	gen, paths := g.gen, g.paths
	go func() {
		images, err := g.load(context.Background(), g.fsys, paths)
		g.results <- loadResult{gen: gen, images: images, err: err}
	}()
}

// Poll drains finished loads and reports whether a new image set became
// available. Results from superseded requests are dropped.
func (g *Gallery) Poll() bool {
	changed := false
	for {
		select {
		case r := <-g.results:
			if r.gen != g.gen {
				continue
			}
			g.pending = false
			if r.err != nil {
				log.Printf("gallery: failed to load images: %v", r.err)
				g.images = nil
				g.err = r.err
				continue
			}
			g.images = r.images
			g.err = nil
			changed = true
		default:
			return changed
		}
	}
}

func (g *Gallery) Images() []image.Image { return g.images }

func (g *Gallery) Paths() []string { return g.paths }

func (g *Gallery) Pending() bool { return g.pending }

func (g *Gallery) Err() error { return g.err }

type Target interface {
	SetImages([]image.Image)
	Loaded() bool
	Redraw(offset int)
}

// Sync collects finished loads into t. A fresh set is drawn at the live
// offset mid-drag and at committed otherwise; a failed load unloads t.
func (g *Gallery) Sync(t Target, c *strip.Controller, committed int) {
	if g.Poll() {
		t.SetImages(g.images)
		if c.State() == strip.StateDragging {
			t.Redraw(c.Offset())
		} else {
			c.SetOffset(committed)
		}
		return
	}
	if g.images == nil && t.Loaded() {
		t.SetImages(nil)
	}
}
