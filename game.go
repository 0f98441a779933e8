package main

import (
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/dragstrip/assets"
	"github.com/milk9111/dragstrip/config"
	"github.com/milk9111/dragstrip/obj"
	"github.com/milk9111/dragstrip/strip"
	"github.com/milk9111/dragstrip/system"
)

type Game struct {
	cfg *config.Config

	// x is the committed strip position, updated when a drag ends.
	x int

	listeners  *strip.Listeners
	input      *obj.Input
	canvas     *obj.Canvas
	controller *strip.Controller
	gallery    *system.Gallery
	watcher    *config.Watcher
	reloader   *config.Reloader

	hud     *ebitenui.UI
	hudText func(string)
}

func NewGame(cfg *config.Config, debug, watch bool) *Game {
	geom := cfg.Geometry()
	g := &Game{
		cfg:       cfg,
		listeners: strip.NewListeners(),
		canvas:    obj.NewCanvas(geom),
		gallery:   system.NewGallery(assets.FS(), nil),
	}
	g.input = obj.NewInput(g.listeners, geom.Viewport())
	g.controller = strip.NewController(g.listeners, geom, g.x, g.canvas.Redraw, g.handlePositionChange)

	if debug {
		g.hud, g.hudText = NewHUD()
	}
	if watch {
		g.watcher = openWatcher(cfg.Server.Watch)
		g.reloader = config.NewReloader(config.DefaultName)
	}

	g.gallery.Request(cfg.Images)
	return g
}

func openWatcher(spec config.WatchSpec) *config.Watcher {
	var dirs []string
	for _, dir := range []string{config.Dir, assets.Dir} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		log.Printf("watch: no %s or %s directory on disk, hot reload disabled", config.Dir, assets.Dir)
		return nil
	}
	match := func(path string) bool {
		return config.IsConfigFile(path) || config.IsImageFile(path)
	}
	w, err := config.OpenWatcher(spec, match, dirs...)
	if err != nil {
		log.Printf("watch: %v", err)
		return nil
	}
	return w
}

func (g *Game) handlePositionChange(x int) {
	g.x = x
}

func (g *Game) Update() error {
	g.input.Update()
	g.pollWatcher()

	g.gallery.Sync(g.canvas, g.controller, g.x)

	if g.controller.State() == strip.StateDragging || g.input.Hovering() {
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}

	if g.hud != nil {
		g.hudText(hudStatus(g))
		g.hud.Update()
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.handleFileChange(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) handleFileChange(name string) {
	if config.IsConfigFile(name) {
		if filepath.Base(name) != config.DefaultName {
			return
		}
		cfg, err := g.reloader.Reload()
		if err != nil {
			log.Printf("watch: keeping previous config: %v", err)
			return
		}
		if cfg != nil {
			g.applyConfig(cfg)
		}
		return
	}
	if slices.Contains(g.gallery.Paths(), filepath.Base(name)) {
		log.Printf("watch: %s changed, reloading images", name)
		g.gallery.Reload()
	}
}

func (g *Game) applyConfig(cfg *config.Config) {
	geom := cfg.Geometry()
	if geom != g.controller.Geometry() {
		if cfg.Viewport != g.cfg.Viewport {
			ebiten.SetWindowSize(cfg.Viewport.Width, cfg.Viewport.Height)
		}
		g.x = geom.Clamp(g.x)
		g.canvas.SetGeometry(geom)
		g.input.SetBounds(geom.Viewport())
		g.controller.SetGeometry(geom)
	}
	if g.gallery.Request(cfg.Images) {
		log.Printf("watch: image list changed, loading %d images", len(cfg.Images))
	}
	g.cfg = cfg
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Draw(screen)
	if g.hud != nil {
		g.hud.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Viewport.Width), float64(g.cfg.Viewport.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close releases the file watcher.
func (g *Game) Close() {
	g.controller.Detach()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
