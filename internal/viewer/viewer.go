// Package viewer wires the window, mesh and renderer into the frame loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/screenshot"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/mesh"
)

// Viewer is the running application.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *screenshot.Writer

	// set by the P key, served after the next frame is drawn
	screenshotPending bool
}

// New opens the window, loads the mesh and uploads it.
// A mesh that fails to load is replaced by the debug mesh; every other
// failure is returned.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		input:  input.New(),
		shots:  screenshot.New(cfg.Render.ScreenshotDir, "meshview"),
	}

	data, err := mesh.LoadOrDebug(cfg.Mesh.Path)
	if err != nil {
		logger.Warn("mesh load failed, using debug mesh",
			zap.String("path", cfg.Mesh.Path),
			zap.Error(err),
		)
	} else {
		lo, hi := data.Bounds()
		logger.Info("mesh loaded",
			zap.String("path", cfg.Mesh.Path),
			zap.Int("triangles", data.TriangleCount()),
			zap.Int("uvs", len(data.UVs)),
			zap.Int("normals", len(data.Normals)),
			zap.Any("bounds_min", lo),
			zap.Any("bounds_max", hi),
		)
	}

	// Window first: it creates the OpenGL context
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := renderer.InitGL(); err != nil {
		v.window.Close()
		return nil, err
	}

	prog, err := shader.Compile(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to compile shaders: %w", err)
	}

	cam := camera.New()
	cam.SpinRate = cfg.Render.SpinDegreesPerSecond

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Wireframe:  cfg.Render.Wireframe,
		ClearColor: cfg.Render.ClearColor,
	}, cam, data, prog)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	logger.Info("viewer initialized")
	return v, nil
}

// Run draws frames until the window is closed or escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	logger.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.renderer.RenderFrame(float32(now.Sub(start).Seconds()))
		if v.screenshotPending {
			v.screenshotPending = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", v.config.Window.Title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			// Event sizes are in screen coordinates; the viewport needs pixels
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_F:
				v.renderer.SetWireframe(!v.renderer.Wireframe())
			case sdl.SCANCODE_P:
				v.screenshotPending = true
			}
		}
	}
}

// saveScreenshot writes the back buffer. Failures are logged only.
func (v *Viewer) saveScreenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.SaveRGBA(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
