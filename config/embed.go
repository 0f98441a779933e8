package config

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const DefaultName = "config.yaml"

//go:embed *.yaml
var ConfigFS embed.FS

var Dir = "config"

// Read returns the named config file, preferring the copy on disk.
func Read(name string) ([]byte, error) {
	clean := cleanConfigPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	return ConfigFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(DiskPath(cleanConfigPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func DiskPath(name string) string {
	return filepath.Join(Dir, filepath.FromSlash(cleanConfigPath(name)))
}

func cleanConfigPath(path string) string {
	if path == "" {
		return DefaultName
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "config/"); ok {
		return after
	}
	return s
}

type Reloader struct {
	name string
	mod  time.Time
}

func NewReloader(name string) *Reloader {
	r := &Reloader{name: name}
	r.mod, _ = ModTime(name)
	return r
}

// Reload returns a nil config when the file is unchanged since the last load.
func (r *Reloader) Reload() (*Config, error) {
	mod, ok := ModTime(r.name)
	if ok && mod.Equal(r.mod) || !ok && r.mod.IsZero() {
		return nil, nil
	}
	cfg, err := Load(r.name)
	if err != nil {
		return nil, err
	}
	r.mod = mod
	return cfg, nil
}
