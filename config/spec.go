package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/dragstrip/strip"
)

type ViewportSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type WatchSpec struct {
	UsePolling bool          `yaml:"use_polling"`
	Interval   time.Duration `yaml:"interval"`
}

type ServerSpec struct {
	Host       string    `yaml:"host"`
	Port       int       `yaml:"port"`
	StrictPort bool      `yaml:"strict_port"`
	Watch      WatchSpec `yaml:"watch"`
}

type Config struct {
	Viewport   ViewportSpec `yaml:"viewport"`
	ImageWidth int          `yaml:"image_width"`
	Images     []string     `yaml:"images"`
	Server     ServerSpec   `yaml:"server"`
}

func Load(name string) (*Config, error) {
	data, err := Read(name)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", cleanConfigPath(name), err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", cleanConfigPath(name), err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height))
	}
	if c.ImageWidth <= 0 {
		errs = append(errs, fmt.Errorf("image_width must be positive, got %d", c.ImageWidth))
	}
	if len(c.Images) == 0 {
		errs = append(errs, errors.New("images must not be empty"))
	}
	for i, img := range c.Images {
		if img == "" {
			errs = append(errs, fmt.Errorf("images[%d] is empty", i))
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.Watch.UsePolling && c.Server.Watch.Interval <= 0 {
		errs = append(errs, fmt.Errorf("server.watch.interval must be positive when polling, got %s", c.Server.Watch.Interval))
	}
	return errors.Join(errs...)
}

func (c *Config) Geometry() strip.Geometry {
	return strip.Geometry{
		ViewportWidth:  c.Viewport.Width,
		ViewportHeight: c.Viewport.Height,
		ImageWidth:     c.ImageWidth,
		ImageCount:     len(c.Images),
	}
}

func (s ServerSpec) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
