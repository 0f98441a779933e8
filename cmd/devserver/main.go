package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/milk9111/dragstrip/assets"
	"github.com/milk9111/dragstrip/config"
)

func main() {
	root := flag.String("root", ".", "module root to build and watch")
	out := flag.String("out", ".devserver", "build output directory, relative to root")
	pkg := flag.String("pkg", ".", "package to build for the browser")
	flag.Parse()

	if err := os.Chdir(*root); err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load(config.DefaultName)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := &builder{root: ".", out: *out, pkg: *pkg}
	if err := b.Build(ctx, cfg); err != nil {
		log.Fatal(err)
	}

	ln, err := listen(cfg.Server)
	if err != nil {
		log.Fatal(err)
	}
	srv := &http.Server{Handler: handler(*out, assets.FS())}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	log.Printf("devserver: serving %s on http://%s", *out, ln.Addr())

	dirs, err := config.Dirs(".", *out)
	if err != nil {
		log.Fatal(err)
	}
	w, err := config.OpenWatcher(cfg.Server.Watch, isSourceFile, dirs...)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	settle := cfg.Server.Watch.Interval
	if settle <= 0 {
		settle = 100 * time.Millisecond
	}

	errs := w.Errors
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			drain(w.Events, settle)
			log.Printf("devserver: %s changed, rebuilding", filepath.ToSlash(name))
			if next, err := config.Load(config.DefaultName); err != nil {
				log.Printf("devserver: keeping previous config: %v", err)
			} else {
				cfg = next
			}
			start := time.Now()
			if err := b.Build(ctx, cfg); err != nil {
				log.Printf("devserver: %v", err)
				continue
			}
			log.Printf("devserver: rebuilt in %s", time.Since(start).Round(time.Millisecond))
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("devserver: watch: %v", err)
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
			return
		}
	}
}

// drain swallows the burst of events an editor save produces.
func drain(events <-chan string, settle time.Duration) {
	timer := time.NewTimer(settle)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			timer.Reset(settle)
		case <-timer.C:
			return
		}
	}
}
