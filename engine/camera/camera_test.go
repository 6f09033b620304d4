package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ndc(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	clip := m.Mul4x1(p.Vec4(1))
	return clip.Vec3().Mul(1 / clip.W())
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.InDelta(t, math.Pi/4, c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.Equal(t, ClipSpaceGL, c.ClipSpace())
	assert.Nil(t, c.Controller())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())

	// Update without a controller leaves the view untouched.
	c.Update()
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
}

func TestCameraLooksAtTarget(t *testing.T) {
	ctrl := NewCameraController(WithRadius(12), WithAzimuth(0.3), WithTarget(mgl32.Vec3{1, 0, -2}))
	c := NewCamera(WithController(ctrl), WithAspect(4.0/3.0), WithFar(50))

	p := ndc(c.ViewProjectionMatrix(), ctrl.Target())
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.Greater(t, p.Z(), float32(-1))
	assert.Less(t, p.Z(), float32(1))

	assert.True(t, c.ProjectionMatrix().Mul4(c.ViewMatrix()).ApproxEqual(c.ViewProjectionMatrix()))
}

func TestCameraWebGPUClipSpace(t *testing.T) {
	ctrl := NewCameraController(WithRadius(8))
	gl := NewCamera(WithController(ctrl))
	wgpu := NewCamera(WithController(ctrl), WithClipSpace(ClipSpaceWebGPU))

	glZ := ndc(gl.ViewProjectionMatrix(), mgl32.Vec3{}).Z()
	wgpuZ := ndc(wgpu.ViewProjectionMatrix(), mgl32.Vec3{}).Z()
	assert.InDelta(t, (glZ+1)/2, wgpuZ, 1e-5)

	// Near and far planes land on the ends of each depth range.
	assert.InDelta(t, -1, ndc(gl.ProjectionMatrix(), mgl32.Vec3{0, 0, -gl.Near()}).Z(), 1e-4)
	assert.InDelta(t, 0, ndc(wgpu.ProjectionMatrix(), mgl32.Vec3{0, 0, -wgpu.Near()}).Z(), 1e-4)
	assert.InDelta(t, 1, ndc(wgpu.ProjectionMatrix(), mgl32.Vec3{0, 0, -wgpu.Far()}).Z(), 1e-3)
}

func TestCameraSettersRecompute(t *testing.T) {
	ctrl := NewCameraController()
	c := NewCamera(WithController(ctrl))

	before := c.ViewProjectionMatrix()
	c.SetViewport(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect(), 1e-6)
	assert.False(t, before.ApproxEqual(c.ViewProjectionMatrix()))

	c.SetViewport(800, 0)
	assert.Equal(t, float32(800), c.Aspect())

	c.SetFov(1)
	c.SetNear(1)
	c.SetFar(10)
	assert.Equal(t, mgl32.Perspective(1, 800, 1, 10), c.ProjectionMatrix())

	view := c.ViewMatrix()
	ctrl.Orbit(0.5, 0)
	assert.Equal(t, view, c.ViewMatrix())
	c.Update()
	assert.False(t, view.ApproxEqual(c.ViewMatrix()))

	other := NewCameraController(WithRadius(3))
	c.SetController(other)
	assert.Same(t, other, c.Controller())
	assert.True(t, mgl32.LookAtV(other.Position(), other.Target(), c.Up()).ApproxEqual(c.ViewMatrix()))
}

func TestCameraControllerSphericalPosition(t *testing.T) {
	ctrl := NewCameraController(WithRadius(10), WithAzimuth(0), WithElevation(0))
	assert.True(t, ctrl.Position().ApproxEqual(mgl32.Vec3{0, 0, 10}))

	ctrl.SetAzimuth(math.Pi / 2)
	assert.True(t, ctrl.Position().ApproxEqualThreshold(mgl32.Vec3{10, 0, 0}, 1e-5))

	ctrl.SetTarget(mgl32.Vec3{0, 2, 0})
	assert.True(t, ctrl.Position().ApproxEqualThreshold(mgl32.Vec3{10, 2, 0}, 1e-5))

	ctrl.SetElevation(math.Pi / 6)
	pos := ctrl.Position()
	assert.InDelta(t, 2+10*0.5, pos.Y(), 1e-4)
	assert.InDelta(t, 10, pos.Sub(ctrl.Target()).Len(), 1e-4)
}

func TestCameraControllerClamps(t *testing.T) {
	ctrl := NewCameraController(WithRadiusLimits(2, 20), WithRadius(50))
	assert.Equal(t, float32(20), ctrl.Radius())

	ctrl.SetRadius(0)
	assert.Equal(t, float32(2), ctrl.Radius())

	ctrl.SetElevation(math.Pi)
	assert.Less(t, ctrl.Elevation(), float32(math.Pi/2))
	ctrl.Orbit(1, -10)
	assert.Greater(t, ctrl.Elevation(), float32(-math.Pi/2))
	assert.Equal(t, float32(1), ctrl.Azimuth())

	// Inverted limits are ignored.
	ctrl = NewCameraController(WithRadiusLimits(5, 1), WithRadius(0.1))
	require.Equal(t, float32(0.5), ctrl.Radius())
}
