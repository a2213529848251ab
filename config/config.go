// Package config loads the viewer settings from TOML or YAML files and converts them into
// controller options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	// Background is a 0xRRGGBB clear color.
	Background uint32 `toml:"background" yaml:"background"`
}

type CameraConfig struct {
	// Fov is the vertical field of view in degrees.
	Fov      float32    `toml:"fov" yaml:"fov"`
	Near     float32    `toml:"near" yaml:"near"`
	Far      float32    `toml:"far" yaml:"far"`
	Position [3]float32 `toml:"position" yaml:"position"`
}

// OrbitConfig mirrors orbit.Config with angles in degrees. A zero MaxDistance or MaxZoom
// means unbounded.
type OrbitConfig struct {
	MinDistance     float32 `toml:"min_distance" yaml:"min_distance"`
	MaxDistance     float32 `toml:"max_distance" yaml:"max_distance"`
	MinZoom         float32 `toml:"min_zoom" yaml:"min_zoom"`
	MaxZoom         float32 `toml:"max_zoom" yaml:"max_zoom"`
	MinPolarAngle   float32 `toml:"min_polar_angle" yaml:"min_polar_angle"`
	MaxPolarAngle   float32 `toml:"max_polar_angle" yaml:"max_polar_angle"`
	EnableDamping   bool    `toml:"enable_damping" yaml:"enable_damping"`
	DampingFactor   float32 `toml:"damping_factor" yaml:"damping_factor"`
	EnableZoom      bool    `toml:"enable_zoom" yaml:"enable_zoom"`
	ZoomSpeed       float32 `toml:"zoom_speed" yaml:"zoom_speed"`
	EnableRotate    bool    `toml:"enable_rotate" yaml:"enable_rotate"`
	RotateSpeed     float32 `toml:"rotate_speed" yaml:"rotate_speed"`
	EnablePan       bool    `toml:"enable_pan" yaml:"enable_pan"`
	KeyPanSpeed     float32 `toml:"key_pan_speed" yaml:"key_pan_speed"`
	AutoRotate      bool    `toml:"auto_rotate" yaml:"auto_rotate"`
	AutoRotateSpeed float32 `toml:"auto_rotate_speed" yaml:"auto_rotate_speed"`
	EnableKeys      bool    `toml:"enable_keys" yaml:"enable_keys"`
}

type TransformConfig struct {
	Mode            string  `toml:"mode" yaml:"mode"`
	Space           string  `toml:"space" yaml:"space"`
	Size            float32 `toml:"size" yaml:"size"`
	TranslationSnap float32 `toml:"translation_snap" yaml:"translation_snap"`
	// RotationSnap is in degrees.
	RotationSnap float32 `toml:"rotation_snap" yaml:"rotation_snap"`
}

type FirstPersonConfig struct {
	MovementSpeed float32 `toml:"movement_speed" yaml:"movement_speed"`
	LookSpeed     float32 `toml:"look_speed" yaml:"look_speed"`
	LookVertical  bool    `toml:"look_vertical" yaml:"look_vertical"`
	AutoForward   bool    `toml:"auto_forward" yaml:"auto_forward"`
}

type TopologyConfig struct {
	// DebounceMS is the quiet period before a changed file is reloaded.
	DebounceMS int `toml:"debounce_ms" yaml:"debounce_ms"`
	// Seed fixes the random node heights when non-zero.
	Seed uint64 `toml:"seed" yaml:"seed"`
}

type AutoHideConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	DelayMS int  `toml:"delay_ms" yaml:"delay_ms"`
}

// Config is the full viewer configuration.
type Config struct {
	Window      WindowConfig      `toml:"window" yaml:"window"`
	Camera      CameraConfig      `toml:"camera" yaml:"camera"`
	Orbit       OrbitConfig       `toml:"orbit" yaml:"orbit"`
	Transform   TransformConfig   `toml:"transform" yaml:"transform"`
	FirstPerson FirstPersonConfig `toml:"first_person" yaml:"first_person"`
	Topology    TopologyConfig    `toml:"topology" yaml:"topology"`
	AutoHide    AutoHideConfig    `toml:"auto_hide" yaml:"auto_hide"`
}

// Default returns the settings of the stock topology view.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:      "topo3d",
			Width:      1280,
			Height:     800,
			Background: 0xf0f0f0,
		},
		Camera: CameraConfig{
			Fov:      70,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{0, 0, 600},
		},
		Orbit: OrbitConfig{
			MaxPolarAngle:   180,
			DampingFactor:   0.25,
			EnableZoom:      true,
			ZoomSpeed:       1,
			EnableRotate:    true,
			RotateSpeed:     1,
			EnablePan:       false,
			KeyPanSpeed:     7,
			AutoRotateSpeed: 2,
			EnableKeys:      true,
		},
		Transform: TransformConfig{
			Mode:  "translate",
			Space: "world",
			Size:  1,
		},
		FirstPerson: FirstPersonConfig{
			MovementSpeed: 100,
			LookSpeed:     0.1,
		},
		Topology: TopologyConfig{
			DebounceMS: 200,
		},
		AutoHide: AutoHideConfig{
			Enabled: true,
			DelayMS: 2500,
		},
	}
}

// Load reads path over the defaults. The format is chosen by extension: .toml, .yaml or
// .yml. An empty path returns the defaults.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(&cfg, filepath.Ext(path), data); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode unmarshals data in the format named by ext into cfg. Fields absent from data keep
// their current values.
//
// Parameters:
//   - cfg: the configuration to fill
//   - ext: the file extension, with or without the leading dot
//   - data: the encoded document
//
// Returns:
//   - error: ErrUnsupportedFormat or a decode error
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("failed to decode toml: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// Validate checks value ranges and enumerations.
//
// Returns:
//   - error: every violation joined, each wrapping ErrInvalidConfig, or nil
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Camera.Fov > 0 && c.Camera.Fov < 180, "camera fov %v", c.Camera.Fov)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera clip range %v..%v", c.Camera.Near, c.Camera.Far)

	o := c.Orbit
	check(o.MinDistance >= 0, "orbit min_distance %v", o.MinDistance)
	check(o.MaxDistance == 0 || o.MaxDistance >= o.MinDistance, "orbit max_distance %v below min_distance %v", o.MaxDistance, o.MinDistance)
	check(o.MaxZoom == 0 || o.MaxZoom >= o.MinZoom, "orbit max_zoom %v below min_zoom %v", o.MaxZoom, o.MinZoom)
	check(o.MinPolarAngle >= 0 && o.MaxPolarAngle <= 180 && o.MinPolarAngle <= o.MaxPolarAngle,
		"orbit polar range %v..%v", o.MinPolarAngle, o.MaxPolarAngle)
	check(o.DampingFactor > 0 && o.DampingFactor <= 1, "orbit damping_factor %v", o.DampingFactor)

	t := c.Transform
	check(t.Mode == "translate" || t.Mode == "rotate" || t.Mode == "scale", "transform mode %q", t.Mode)
	check(t.Space == "world" || t.Space == "local", "transform space %q", t.Space)
	check(t.Size > 0, "transform size %v", t.Size)
	check(t.TranslationSnap >= 0 && t.RotationSnap >= 0, "transform snaps must not be negative")

	check(c.Topology.DebounceMS >= 0, "topology debounce_ms %d", c.Topology.DebounceMS)
	check(c.AutoHide.DelayMS >= 0, "auto_hide delay_ms %d", c.AutoHide.DelayMS)

	return errors.Join(errs...)
}

// Debounce returns the topology reload debounce as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Topology.DebounceMS) * time.Millisecond
}

// AutoHideDelay returns the gizmo auto-hide delay, or 0 when auto-hide is disabled.
func (c Config) AutoHideDelay() time.Duration {
	if !c.AutoHide.Enabled {
		return 0
	}
	return time.Duration(c.AutoHide.DelayMS) * time.Millisecond
}
