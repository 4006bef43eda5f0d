package renderer

import (
	"fmt"
	"image"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	clearColor           [3]float64
}

// Renderer presents CPU-composited frames on a GPU surface.
//
// Each Present uploads the frame into a sampled texture and draws it over the whole surface with a
// single full-screen triangle. The Renderer also owns the input uniform buffer that mirrors the
// per-frame time, frame index and cursor position for user kernels; it is bound at group 0,
// binding 2 of the blit pipeline and exposed through UniformBuffer.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Present uploads frame and presents it. The frame texture is recreated when the frame size changes.
	//
	// Parameters:
	//   - frame: the composited frame
	//
	// Returns:
	//   - error: error if the surface texture cannot be acquired or the submission fails
	Present(frame *image.RGBA) error

	// WriteUniforms writes the input uniform block to the GPU. Data longer than InputUniformSize is truncated.
	//
	// Parameters:
	//   - data: the raw uniform bytes
	WriteUniforms(data []byte)

	// UniformBuffer returns the GPU buffer holding the input uniform block.
	UniformBuffer() *wgpu.Buffer

	// Release frees every GPU object owned by the renderer. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer presenting to the surface described by surfaceDescriptor.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surfaceDescriptor: the platform-specific surface descriptor for WebGPU surface creation
//   - width: initial framebuffer width in pixels
//   - height: initial framebuffer height in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new Renderer with its surface configured
//   - error: error if no adapter, device or pipeline could be created
func NewRenderer(backendType RendererBackendType, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("renderer: nil surface descriptor")
	}

	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		presentMode: PresentModeVSync,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.clearColor)
	}
	if err != nil {
		return nil, err
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(width, height)
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
	r.backend.Reconfigure()
}

func (r *renderer) Present(frame *image.RGBA) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if frame == nil {
		return nil
	}
	if err := r.backend.UploadFrame(frame); err != nil {
		return err
	}
	return r.backend.DrawFrame()
}

func (r *renderer) WriteUniforms(data []byte) {
	r.backend.WriteUniforms(data)
}

func (r *renderer) UniformBuffer() *wgpu.Buffer {
	return r.backend.UniformBuffer()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
