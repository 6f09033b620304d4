package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Carmen-Shannon/oxy-vertex/engine/camera"
	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer/gl_driver"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/Carmen-Shannon/oxy-vertex/engine/window"
	"github.com/go-gl/gl/v3.3-compatibility/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// runGL renders the scene through an OpenGL context. Core contexts draw with a generated shader
// program; legacy contexts use the fixed-function matrix stack and lighting.
func runGL(ctx context.Context, cfg Config, logger *slog.Logger) (err error) {
	api := window.ClientAPIOpenGLCompat
	if cfg.Renderer.Profile == ProfileCore {
		api = window.ClientAPIOpenGLCore
	}
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithClientAPI(api),
		window.WithGLVersion(3, 3),
		window.WithVSync(cfg.Window.VSync),
	)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, win.Close())
	}()

	driverOpts := []gl_driver.GLDriverBuilderOption{gl_driver.WithLogger(logger)}
	if cfg.Renderer.Profile == ProfileLegacy {
		driverOpts = append(driverOpts, gl_driver.WithCoreProfile(false))
	}
	drv, err := gl_driver.NewGLDriver(driverOpts...)
	if err != nil {
		return err
	}
	device := vertex.NewDevice(drv, vertex.WithLogger(logger))
	format := cfg.VertexFormat()

	var setMVP func(mvp mgl32.Mat4)
	if device.Profile() == vertex.ProfileCore {
		program, err := newGLProgram(glslSources(format))
		if err != nil {
			return err
		}
		defer gl.DeleteProgram(program)
		mvpLocation := gl.GetUniformLocation(program, gl.Str("mvp\x00"))
		gl.UseProgram(program)
		setMVP = func(mvp mgl32.Mat4) {
			gl.UniformMatrix4fv(mvpLocation, 1, false, &mvp[0])
		}
	} else {
		setupFixedFunction(format)
		setMVP = func(mvp mgl32.Mat4) {
			gl.MatrixMode(gl.PROJECTION)
			gl.LoadMatrixf(&mvp[0])
			gl.MatrixMode(gl.MODELVIEW)
			gl.LoadIdentity()
		}
	}

	s, err := buildScene(ctx, cfg.Mesh, format, device, logger)
	if err != nil {
		return err
	}
	defer s.destroy()

	cc := cfg.Renderer.ClearColor
	gl.ClearColor(float32(cc[0]), float32(cc[1]), float32(cc[2]), float32(cc[3]))
	gl.Enable(gl.DEPTH_TEST)
	gl.Viewport(0, 0, int32(win.Width()), int32(win.Height()))
	win.SetResizeCallback(func(width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	cam := s.newCamera(camera.ClipSpaceGL)
	state := newDemoState(win.Time(), newProfiler(cfg, device, logger))
	win.SetKeyDownCallback(state.handleKey)

	var frameErr error
	win.SetUpdateCallback(func() {
		if ctx.Err() != nil {
			win.RequestClose()
			return
		}
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		setMVP(orbitMVP(cam, win.Width(), win.Height(), state.advance(win.Time())))

		var lineErr error
		if state.showGrid {
			lineErr = s.renderLines()
		}
		if err := errors.Join(lineErr, s.renderTriangles()); err != nil {
			frameErr = err
			win.RequestClose()
			return
		}
		win.SwapBuffers()
		state.endFrame()
	})
	win.ProcessMessages()

	if frameErr != nil {
		return fmt.Errorf("frame failed: %w", frameErr)
	}
	return nil
}

// setupFixedFunction enables per-vertex color and, for formats with normals, one directional light.
func setupFixedFunction(format vertex.VertexFormat) {
	gl.UseProgram(0)
	if format.ColorCount() == 0 {
		gl.Color4f(1, 1, 1, 1)
	}
	if format.NormalCount() == 0 {
		return
	}
	gl.Enable(gl.LIGHTING)
	gl.Enable(gl.LIGHT0)
	gl.Enable(gl.COLOR_MATERIAL)
	gl.Enable(gl.NORMALIZE)
	gl.ColorMaterial(gl.FRONT_AND_BACK, gl.AMBIENT_AND_DIFFUSE)

	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
	direction := mgl32.Vec4{0.4, 1.0, 0.6, 0}
	ambient := mgl32.Vec4{0.35, 0.35, 0.35, 1}
	gl.Lightfv(gl.LIGHT0, gl.POSITION, &direction[0])
	gl.LightModelfv(gl.LIGHT_MODEL_AMBIENT, &ambient[0])
}

// newGLProgram compiles and links a vertex and fragment shader pair.
func newGLProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileGLShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileGLShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileGLShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
