package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex/vertextest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestProfilerReportsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var out bytes.Buffer
	p := NewProfiler(
		withClock(clock.now),
		WithInterval(time.Second),
		WithLogger(slog.New(slog.NewTextHandler(&out, nil))),
	)

	for range 9 {
		clock.advance(100 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	clock.advance(100 * time.Millisecond)
	require.True(t, p.Tick())

	assert.InDelta(t, 10.0, p.LastReport().FPS, 0.001)
	assert.Contains(t, out.String(), "fps=10")
	assert.NotContains(t, out.String(), "draws_per_frame")

	clock.advance(100 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestProfilerFoldsDeviceStats(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	device := vertex.NewDevice(vertextest.NewDriver(true))
	var out bytes.Buffer
	p := NewProfiler(
		withClock(clock.now),
		WithDevice(device),
		WithLogger(slog.New(slog.NewTextHandler(&out, nil))),
	)

	va := vertex.NewVertexArray(3, vertex.NewVertexFormat(0, 0, 0, 2))
	va.AddVertex(0, 0)
	va.AddVertex(1, 0)
	va.AddVertex(0, 1)
	vb, err := vertex.NewVertexBuffer(device, va)
	require.NoError(t, err)

	clock.advance(500 * time.Millisecond)
	require.NoError(t, vb.Render())
	require.NoError(t, vb.Render())
	assert.False(t, p.Tick())

	clock.advance(500 * time.Millisecond)
	require.NoError(t, vb.Render())
	require.True(t, p.Tick())

	r := p.LastReport()
	assert.InDelta(t, 1.5, r.DrawCallsPerFrame, 0.001)
	assert.InDelta(t, 4.5, r.VerticesPerFrame, 0.001)
	assert.InDelta(t, 24.0/1024, r.UploadKBps, 0.0001)
	assert.Equal(t, 1, r.LiveBuffers)
	assert.Contains(t, out.String(), "live_buffers=1")

	stats := device.Stats()
	assert.Zero(t, stats.DrawCalls)
	assert.Zero(t, stats.BytesUploaded)
	assert.Equal(t, 1, stats.LiveBuffers)
}

func TestProfilerOptionsIgnoreInvalidValues(t *testing.T) {
	p := NewProfiler(WithInterval(-time.Second), WithLogger(nil))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.Same(t, slog.Default(), p.logger)
}
