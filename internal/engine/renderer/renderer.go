// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-collide/internal/engine/debug"
	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// ClearColor is the background color.
var ClearColor = debug.Color{R: 0.1, G: 0.1, B: 0.15, A: 1.0}

const vertexShaderSource = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec4 aColor;

	uniform mat4 uViewProj;

	out vec4 vertexColor;

	void main() {
		gl_Position = uViewProj * vec4(aPos, 1.0);
		vertexColor = aColor;
	}
`

const fragmentShaderSource = `
	#version 410 core

	in vec4 vertexColor;
	out vec4 FragColor;

	void main() {
		FragColor = vertexColor;
	}
`

// stream is a vertex array refilled every frame.
type stream struct {
	vao uint32
	vbo uint32
}

func newStream() stream {
	var s stream
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)

	stride := int32(debug.FloatsPerVertex * 4)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return s
}

// draw uploads vertices and draws them with the given primitive mode.
func (s stream) draw(mode uint32, vertices []float32) {
	if len(vertices) == 0 {
		return
	}
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(len(vertices)/debug.FloatsPerVertex))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (s *stream) delete() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		s.vao = 0
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
		s.vbo = 0
	}
}

// Renderer draws debug geometry collected in a debug.LineBuffer.
type Renderer struct {
	config Config

	program   uint32
	uViewProj int32

	lines     stream
	triangles stream
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	var err error
	r.program, err = linkProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.uViewProj, err = uniform(r.program, "uViewProj")
	if err != nil {
		gl.DeleteProgram(r.program)
		return nil, err
	}

	r.lines = newStream()
	r.triangles = newStream()

	logger.Debug("debug renderer created", zap.Uint32("program", r.program))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.lines.delete()
	r.triangles.delete()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.ClearColor(ClearColor.R, ClearColor.G, ClearColor.B, ClearColor.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the buffer: depth-tested batch first, then the overlay.
// Triangles are alpha blended and do not write depth.
func (r *Renderer) Draw(buf *debug.LineBuffer, viewProj math.Mat4) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, viewProj.Ptr())

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	r.drawBatch(&buf.Depth)

	gl.Disable(gl.DEPTH_TEST)
	r.drawBatch(&buf.Overlay)

	gl.Disable(gl.BLEND)
	gl.UseProgram(0)
}

func (r *Renderer) drawBatch(b *debug.Batch) {
	r.lines.draw(gl.LINES, b.Lines)

	gl.DepthMask(false)
	r.triangles.draw(gl.TRIANGLES, b.Triangles)
	gl.DepthMask(true)
}

// ReadPixels reads the back buffer as RGBA. Rows are bottom-up.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
