package config

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/controls/first_person"
	"github.com/Carmen-Shannon/topo3d/engine/controls/orbit"
	"github.com/Carmen-Shannon/topo3d/engine/controls/transform"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraOptions returns the camera builder options for the configured perspective camera.
//
// Parameters:
//   - aspect: the viewport aspect ratio
//
// Returns:
//   - []camera.CameraBuilderOption: the camera options
func (c Config) CameraOptions(aspect float32) []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithProjection(camera.ProjectionPerspective),
		camera.WithFov(common.DegToRad(c.Camera.Fov)),
		camera.WithAspect(aspect),
		camera.WithNear(c.Camera.Near),
		camera.WithFar(c.Camera.Far),
		camera.WithPosition(mgl32.Vec3(c.Camera.Position)),
	}
}

// OrbitConfig converts the orbit section. Zero maxima become unbounded; the azimuth is
// always unbounded.
//
// Returns:
//   - orbit.Config: the orbit controller configuration
func (c Config) OrbitConfig() orbit.Config {
	o := c.Orbit
	cfg := orbit.DefaultConfig()
	cfg.MinDistance = o.MinDistance
	cfg.MaxDistance = common.Coalesce(o.MaxDistance, math32.Inf(1))
	cfg.MinZoom = o.MinZoom
	cfg.MaxZoom = common.Coalesce(o.MaxZoom, math32.Inf(1))
	cfg.MinPolarAngle = common.DegToRad(o.MinPolarAngle)
	cfg.MaxPolarAngle = common.DegToRad(o.MaxPolarAngle)
	cfg.EnableDamping = o.EnableDamping
	cfg.DampingFactor = o.DampingFactor
	cfg.EnableZoom = o.EnableZoom
	cfg.ZoomSpeed = o.ZoomSpeed
	cfg.EnableRotate = o.EnableRotate
	cfg.RotateSpeed = o.RotateSpeed
	cfg.EnablePan = o.EnablePan
	cfg.KeyPanSpeed = o.KeyPanSpeed
	cfg.AutoRotate = o.AutoRotate
	cfg.AutoRotateSpeed = o.AutoRotateSpeed
	cfg.EnableKeys = o.EnableKeys
	return cfg
}

// TransformOptions converts the transform section into builder options.
//
// Returns:
//   - []transform.TransformBuilderOption: the transform controller options
func (c Config) TransformOptions() []transform.TransformBuilderOption {
	t := c.Transform
	return []transform.TransformBuilderOption{
		transform.WithMode(transform.Mode(t.Mode)),
		transform.WithSpace(transform.Space(t.Space)),
		transform.WithSize(t.Size),
		transform.WithTranslationSnap(t.TranslationSnap),
		transform.WithRotationSnap(common.DegToRad(t.RotationSnap)),
	}
}

// FirstPersonConfig converts the first_person section.
//
// Returns:
//   - first_person.Config: the first-person controller configuration
func (c Config) FirstPersonConfig() first_person.Config {
	cfg := first_person.DefaultConfig()
	cfg.MovementSpeed = c.FirstPerson.MovementSpeed
	cfg.LookSpeed = c.FirstPerson.LookSpeed
	cfg.LookVertical = c.FirstPerson.LookVertical
	cfg.AutoForward = c.FirstPerson.AutoForward
	return cfg
}
