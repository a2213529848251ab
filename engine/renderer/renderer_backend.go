package renderer

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/renderer/mesh"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// drawLayer names one of the fixed pipelines a frame is drawn with.
type drawLayer int

const (
	layerTriangles drawLayer = iota
	layerLines
	layerOverlay
	layerCount
)

// RendererBackend is the GPU API the Renderer drives once per frame.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and depth attachments for a surface size.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	//
	// Returns:
	//   - error: error if an attachment cannot be created
	ConfigureSurface(width, height int) error

	// SetPresentMode selects the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the frame is cleared to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// WriteCamera uploads the camera uniform shared by every layer.
	//
	// Parameters:
	//   - u: the camera uniform
	WriteCamera(u camera.GPUCameraUniform)

	// WriteVertices replaces the vertex stream of one layer, growing its buffer as needed.
	//
	// Parameters:
	//   - layer: the pipeline the vertices are drawn with
	//   - vertices: the vertex data
	//
	// Returns:
	//   - error: error if a larger buffer cannot be allocated
	WriteVertices(layer drawLayer, vertices []mesh.Vertex) error

	// BeginFrame acquires the next surface texture and opens the render pass.
	//
	// Returns:
	//   - error: error if the surface texture cannot be acquired
	BeginFrame() error

	// Draw records a draw of the layer's current vertex stream.
	//
	// Parameters:
	//   - layer: the pipeline to draw with
	Draw(layer drawLayer)

	// EndFrame closes the render pass and submits the recorded commands.
	EndFrame()

	// Present displays the submitted frame.
	Present()

	// Release frees every GPU resource held by the backend.
	Release()
}
