package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-vertex/common"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, 1280, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.Equal(t, ClientAPINone, w.ClientAPI())
	assert.True(t, w.vsync)
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	w.RequestClose()
	assert.Error(t, w.Close())
}

func TestWindowBuilderOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("terrain"),
		WithWidth(800),
		WithHeight(600),
		WithMinWidth(320),
		WithMinHeight(240),
		WithMaxWidth(1920),
		WithMaxHeight(1080),
		WithClientAPI(ClientAPIOpenGLCore),
		WithGLVersion(4, 1),
		WithVSync(false),
	)
	assert.Equal(t, "terrain", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, 320, w.minWidth)
	assert.Equal(t, 240, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)
	assert.Equal(t, ClientAPIOpenGLCore, w.ClientAPI())
	assert.Equal(t, 4, w.glMajor)
	assert.Equal(t, 1, w.glMinor)
	assert.False(t, w.vsync)
}

func TestContextHints(t *testing.T) {
	t.Run("webgpu", func(t *testing.T) {
		hints := contextHints(newEngineWindow())
		assert.Equal(t, []windowHint{{glfw.ClientAPI, glfw.NoAPI}}, hints)
	})

	t.Run("core", func(t *testing.T) {
		hints := contextHints(newEngineWindow(WithClientAPI(ClientAPIOpenGLCore)))
		assert.Contains(t, hints, windowHint{glfw.ClientAPI, glfw.OpenGLAPI})
		assert.Contains(t, hints, windowHint{glfw.OpenGLProfile, glfw.OpenGLCoreProfile})
		assert.Contains(t, hints, windowHint{glfw.OpenGLForwardCompatible, glfw.True})
		assert.Contains(t, hints, windowHint{glfw.ContextVersionMajor, 3})
		assert.Contains(t, hints, windowHint{glfw.ContextVersionMinor, 3})
	})

	t.Run("compat", func(t *testing.T) {
		hints := contextHints(newEngineWindow(WithClientAPI(ClientAPIOpenGLCompat)))
		assert.Contains(t, hints, windowHint{glfw.OpenGLProfile, glfw.OpenGLCompatProfile})
		assert.NotContains(t, hints, windowHint{glfw.OpenGLForwardCompatible, glfw.True})
	})

	t.Run("legacy version requests any profile", func(t *testing.T) {
		hints := contextHints(newEngineWindow(WithClientAPI(ClientAPIOpenGLCompat), WithGLVersion(2, 1)))
		assert.Contains(t, hints, windowHint{glfw.OpenGLProfile, glfw.OpenGLAnyProfile})
	})
}

func TestClientAPI(t *testing.T) {
	assert.False(t, ClientAPINone.IsOpenGL())
	assert.True(t, ClientAPIOpenGLCompat.IsOpenGL())
	assert.True(t, ClientAPIOpenGLCore.IsOpenGL())
	assert.Equal(t, "opengl-core", ClientAPIOpenGLCore.String())
	assert.Equal(t, "ClientAPI(7)", ClientAPI(7).String())
}

func TestKeyCodesMatchGLFW(t *testing.T) {
	assert.Equal(t, int(glfw.KeySpace), common.KeySpace)
	assert.Equal(t, int(glfw.KeyG), common.KeyG)
	assert.Equal(t, int(glfw.KeyP), common.KeyP)
}
