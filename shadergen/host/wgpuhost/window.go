package wgpuhost

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Carmen-Shannon/oxy-shadergen/common"
)

// PreviewWindow is a minimal platform window for previewing generated
// techniques: an update loop, resize notification, and key input for cycling
// materials or target languages.
type PreviewWindow interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is
	// resized, receiving pixel dimensions.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a platform-appropriate wgpu.SurfaceDescriptor
	// created from the underlying GLFW window, or nil before initialization.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still active.
	//
	// Returns:
	//   - bool: true while the window is open
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// ProcessMessages runs the message loop until the window closes, calling
	// the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// previewWindow is the implementation of the PreviewWindow interface.
type previewWindow struct {
	title  string
	width  int
	height int

	window  *glfw.Window
	running bool

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
}

var _ PreviewWindow = &previewWindow{}

// PreviewWindowOption is a functional option for configuring a previewWindow.
type PreviewWindowOption func(w *previewWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - PreviewWindowOption: option function to apply
func WithTitle(title string) PreviewWindowOption {
	return func(w *previewWindow) {
		w.title = title
	}
}

// WithSize sets the requested window dimensions. Zero values keep the
// defaults.
//
// Parameters:
//   - width: requested width in pixels
//   - height: requested height in pixels
//
// Returns:
//   - PreviewWindowOption: option function to apply
func WithSize(width, height int) PreviewWindowOption {
	return func(w *previewWindow) {
		w.width = common.Coalesce(width, w.width)
		w.height = common.Coalesce(height, w.height)
	}
}

// NewPreviewWindow creates and spawns a preview window. The calling goroutine
// is locked to its OS thread because GLFW requires event handling on the
// thread that created the window.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - PreviewWindow: the spawned window
//   - error: error if GLFW initialization or window creation fails
func NewPreviewWindow(options ...PreviewWindowOption) (PreviewWindow, error) {
	w := &previewWindow{
		title:  "Shader Preview",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("wgpuhost: initializing GLFW: %w", err)
	}

	// wgpu brings its own graphics API; no GL context wanted.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("wgpuhost: creating window: %w", err)
	}
	w.window = win
	w.running = true

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.running = false
			win.SetShouldClose(true)
			return
		}
		if action == glfw.Press && w.onKeyDown != nil {
			w.onKeyDown(uint32(key))
		}
	})

	// Framebuffer size, not window size: on high-DPI displays they differ and
	// the surface configuration needs pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	w.width, w.height = win.GetFramebufferSize()

	return w, nil
}

func (w *previewWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *previewWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *previewWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *previewWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.window == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.window)
}

func (w *previewWindow) IsRunning() bool {
	return w.window != nil && w.running && !w.window.ShouldClose()
}

func (w *previewWindow) Close() error {
	if w.window == nil {
		return fmt.Errorf("wgpuhost: window is not initialized")
	}
	w.running = false
	w.window.SetShouldClose(true)
	w.window.Destroy()
	glfw.Terminate()
	return nil
}

func (w *previewWindow) ProcessMessages() {
	for w.IsRunning() {
		glfw.PollEvents()
		if !w.IsRunning() {
			break
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *previewWindow) Width() int {
	return w.width
}

func (w *previewWindow) Height() int {
	return w.height
}
