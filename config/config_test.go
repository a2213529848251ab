package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.Orbit.EnablePan)
	assert.Equal(t, 2500*time.Millisecond, cfg.AutoHideDelay())
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "view.toml", `
[window]
title = "lab"

[orbit]
enable_damping = true
damping_factor = 0.1
max_distance = 800

[transform]
mode = "rotate"
rotation_snap = 15

[auto_hide]
enabled = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lab", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.True(t, cfg.Orbit.EnableDamping)
	assert.Equal(t, "rotate", cfg.Transform.Mode)
	assert.Zero(t, cfg.AutoHideDelay())

	o := cfg.OrbitConfig()
	assert.Equal(t, float32(800), o.MaxDistance)
	assert.True(t, math32.IsInf(o.MaxZoom, 1))
	assert.InDelta(t, math32.Pi, o.MaxPolarAngle, 1e-6)
	assert.False(t, o.EnablePan)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "view.yml", `
camera:
  fov: 45
  position: [0, 10, 300]
first_person:
  movement_speed: 20
  look_vertical: true
topology:
  debounce_ms: 50
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(45), cfg.Camera.Fov)
	assert.Equal(t, [3]float32{0, 10, 300}, cfg.Camera.Position)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce())

	fp := cfg.FirstPersonConfig()
	assert.Equal(t, float32(20), fp.MovementSpeed)
	assert.True(t, fp.LookVertical)
	assert.True(t, fp.ActiveLook)
}

func TestLoadRejectsUnknownFieldsAndFormats(t *testing.T) {
	_, err := Load(write(t, "view.toml", "[orbit]\nwobble = 1\n"))
	assert.Error(t, err)

	_, err = Load(write(t, "view.yaml", "orbit:\n  wobble: 1\n"))
	assert.Error(t, err)

	_, err = Load(write(t, "view.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Load(write(t, "view.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"window":   func(c *Config) { c.Window.Width = 0 },
		"fov":      func(c *Config) { c.Camera.Fov = 180 },
		"clip":     func(c *Config) { c.Camera.Far = c.Camera.Near },
		"distance": func(c *Config) { c.Orbit.MinDistance = 10; c.Orbit.MaxDistance = 5 },
		"polar":    func(c *Config) { c.Orbit.MaxPolarAngle = 200 },
		"damping":  func(c *Config) { c.Orbit.DampingFactor = 0 },
		"mode":     func(c *Config) { c.Transform.Mode = "shear" },
		"space":    func(c *Config) { c.Transform.Space = "screen" },
		"size":     func(c *Config) { c.Transform.Size = 0 },
		"snap":     func(c *Config) { c.Transform.TranslationSnap = -1 },
		"delay":    func(c *Config) { c.AutoHide.DelayMS = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestTransformAndCameraOptions(t *testing.T) {
	cfg := Default()
	cfg.Transform.RotationSnap = 90
	assert.Len(t, cfg.TransformOptions(), 5)

	cam := camera.NewCamera(cfg.CameraOptions(2)...)
	assert.InDelta(t, common.DegToRad(70), cam.Fov(), 1e-6)
	assert.Equal(t, float32(2), cam.Aspect())
	assert.Equal(t, float32(1000), cam.Far())
	assert.Equal(t, float32(600), cam.Position()[2])
}
