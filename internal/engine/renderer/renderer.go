// Package renderer uploads a mesh to the GPU and draws it every frame.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/mesh"
)

const floatSize = 4

// Vertex attribute locations bound by the shaders.
const (
	attribPosition = 0
	attribColor    = 1
)

// Renderer errors.
var (
	ErrEmptyMesh    = errors.New("mesh has no vertices")
	ErrCreateObject = errors.New("failed to create GL object")
	ErrUpload       = errors.New("vertex upload failed")
)

// Program is the shader program the renderer draws with.
type Program interface {
	camera.UniformSetter
	Use()
	Delete()
}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Wireframe  bool
	ClearColor [4]float32
}

// Renderer owns the GPU copy of one mesh.
type Renderer struct {
	config  Config
	camera  *camera.Camera
	program Program

	vao         uint32
	vbo         uint32
	vertexCount int32
}

// InitGL loads OpenGL function pointers for the current context.
// Must be called after the context is created and before any other GL call.
func InitGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)
	return nil
}

// New uploads data as one interleaved position+color buffer.
// The renderer takes ownership of prog: it is deleted in Close, or
// immediately if New fails.
func New(cfg Config, cam *camera.Camera, data *mesh.Data, prog Program) (*Renderer, error) {
	if data == nil || data.VertexCount() == 0 {
		prog.Delete()
		return nil, ErrEmptyMesh
	}

	r := &Renderer{
		config:  cfg,
		camera:  cam,
		program: prog,
	}

	if err := r.upload(data.Vertices); err != nil {
		r.Close()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	r.SetWireframe(cfg.Wireframe)
	r.Resize(cfg.Width, cfg.Height)

	logger.Info("mesh uploaded",
		zap.Int("vertices", data.VertexCount()),
		zap.Int("triangles", data.TriangleCount()),
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
	return r, nil
}

func (r *Renderer) upload(vertices []float32) error {
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	if r.vao == 0 || r.vbo == 0 {
		return fmt.Errorf("%w: vao=%d vbo=%d", ErrCreateObject, r.vao, r.vbo)
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(mesh.VertexStride * floatSize)

	gl.VertexAttribPointer(attribPosition, mesh.PositionSize, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(attribPosition)

	gl.VertexAttribPointer(attribColor, mesh.ColorSize, gl.FLOAT, false, stride, gl.PtrOffset(mesh.PositionSize*floatSize))
	gl.EnableVertexAttribArray(attribColor)

	// The VAO keeps the buffer binding for the attributes
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%w: GL error 0x%x", ErrUpload, code)
	}

	r.vertexCount = int32(len(vertices) / mesh.VertexStride)
	return nil
}

// Resize records the framebuffer size used for the viewport and projection.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetWireframe switches between outline and filled polygons.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Wireframe reports whether polygons are drawn as outlines.
func (r *Renderer) Wireframe() bool {
	return r.config.Wireframe
}

// RenderFrame clears the framebuffer and draws the mesh with the
// transforms for elapsedSeconds.
func (r *Renderer) RenderFrame(elapsedSeconds float32) {
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.camera.Compute(elapsedSeconds, r.config.Width, r.config.Height).Apply(r.program)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertexCount)
	gl.BindVertexArray(0)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Close releases the vertex array, the buffer and the shader program.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}
