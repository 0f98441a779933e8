package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/milk9111/dragstrip/config"
)

const wasmName = "main.wasm"

const pageName = "strip.html"

//go:embed index.html.tmpl
var indexTemplate string

//go:embed strip.html.tmpl
var pageTemplate string

var (
	indexTmpl = template.Must(template.New("index").Parse(indexTemplate))
	pageTmpl  = template.Must(template.New("page").Parse(pageTemplate))
)

// builder compiles the widget for the browser into out.
type builder struct {
	root string
	out  string
	pkg  string

	mu sync.Mutex
}

func (b *builder) Build(ctx context.Context, cfg *config.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(b.out, 0o755); err != nil {
		return fmt.Errorf("devserver: create %s: %w", b.out, err)
	}

	cmd := exec.CommandContext(ctx, "go", "build", "-o", filepath.Join(b.out, wasmName), b.pkg)
	cmd.Dir = b.root
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("devserver: go build: %w\n%s", err, strings.TrimSpace(stderr.String()))
	}

	if err := b.writeSupport(ctx); err != nil {
		return err
	}
	return writePages(b.out, cfg)
}

func (b *builder) writeSupport(ctx context.Context) error {
	dst := filepath.Join(b.out, "wasm_exec.js")
	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return fmt.Errorf("devserver: go env GOROOT: %w", err)
	}
	goroot := strings.TrimSpace(string(out))

	var lastErr error
	for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
		data, err := os.ReadFile(filepath.Join(goroot, filepath.FromSlash(rel)))
		if err != nil {
			lastErr = err
			continue
		}
		return os.WriteFile(dst, data, 0o644)
	}
	return fmt.Errorf("devserver: wasm_exec.js not found in %s: %w", goroot, lastErr)
}

// writePages writes index.html, which holds the widget in a frame of the
// viewport size, and the page inside that frame that boots the wasm binary.
// Ebitengine fills whatever document it runs in, so the frame is what keeps
// the strip at its configured size.
func writePages(out string, cfg *config.Config) error {
	data := struct {
		Title  string
		Page   string
		Wasm   string
		Width  int
		Height int
	}{"dragstrip", pageName, wasmName, cfg.Viewport.Width, cfg.Viewport.Height}

	for name, tmpl := range map[string]*template.Template{"index.html": indexTmpl, pageName: pageTmpl} {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("devserver: render %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(out, name), buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("devserver: write %s: %w", name, err)
		}
	}
	return nil
}

// isSourceFile reports whether a change to path needs a rebuild.
func isSourceFile(path string) bool {
	return filepath.Ext(path) == ".go" || config.IsConfigFile(path) || config.IsImageFile(path)
}
