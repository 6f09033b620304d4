package mesh

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex/vertextest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chunkFormat = vertex.NewVertexFormat(0, 3, 3, 3)

func cubeJob(label string, x float32) Job {
	return Job{
		Label:       label,
		MaxVertexes: CubeVertexCount,
		Format:      chunkFormat,
		Build: func(va vertex.VertexArray) error {
			AppendCube(va, mgl32.Vec3{x, 0, 0}, 1, [6]mgl32.Vec4{})
			return nil
		},
	}
}

func TestMesherMeshesInJobOrder(t *testing.T) {
	m := NewMesher(WithWorkers(3))
	defer m.Close()

	jobs := make([]Job, 16)
	for i := range jobs {
		jobs[i] = cubeJob(fmt.Sprintf("chunk-%d", i), float32(i))
	}

	results, err := m.Mesh(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	for i, r := range results {
		assert.Equal(t, jobs[i].Label, r.Label)
		require.NotNil(t, r.Array)
		assert.Equal(t, CubeVertexCount, r.Array.VertexCount())
		// The first vertex of the +X face sits at x + 0.5.
		assert.InDelta(t, float64(i)+0.5, float64(r.Array.Data()[6]), 1e-6)
	}
}

func TestMesherJoinsJobErrors(t *testing.T) {
	m := NewMesher(WithWorkers(2))
	defer m.Close()

	errBoom := errors.New("boom")
	jobs := []Job{
		cubeJob("ok", 0),
		{Label: "fails", MaxVertexes: 1, Format: chunkFormat, Build: func(vertex.VertexArray) error { return errBoom }},
		{Label: "overflows", MaxVertexes: 1, Format: chunkFormat, Build: func(va vertex.VertexArray) error {
			AppendQuad(va, [4]mgl32.Vec3{}, mgl32.Vec4{})
			return nil
		}},
	}

	results, err := m.Mesh(context.Background(), jobs)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, err, vertex.ErrContract)
	assert.Contains(t, err.Error(), `"overflows"`)

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, errBoom)
	assert.Nil(t, results[1].Array)
	assert.ErrorIs(t, results[2].Err, vertex.ErrContract)
	assert.Nil(t, results[2].Array)
}

func TestMesherSkipsJobsAfterCancel(t *testing.T) {
	m := NewMesher()
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := m.Mesh(ctx, []Job{cubeJob("a", 0), cubeJob("b", 1)})
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Nil(t, r.Array)
	}
}

func TestMesherUpload(t *testing.T) {
	m := NewMesher(WithWorkers(2))
	defer m.Close()

	drv := vertextest.NewDriver(true)
	device := vertex.NewDevice(drv)

	results, err := m.Mesh(context.Background(), []Job{
		cubeJob("a", 0),
		{Label: "broken", MaxVertexes: 1, Format: chunkFormat, Build: func(vertex.VertexArray) error { return errors.New("bad chunk") }},
		cubeJob("b", 2),
	})
	require.Error(t, err)

	buffers, err := m.Upload(device, results, vertex.WithStaticDraw(true))
	require.NoError(t, err)
	require.Len(t, buffers, 3)

	assert.False(t, buffers[0].Empty())
	assert.True(t, buffers[1].Empty())
	assert.Equal(t, "broken", buffers[1].Label())
	assert.False(t, buffers[2].Empty())
	assert.Equal(t, "b", buffers[2].Label())
	assert.Equal(t, CubeVertexCount, buffers[2].VertexCount())
	assert.Equal(t, 2, drv.LiveBuffers())

	drv.FailBufferData = true
	buffers, err = m.Upload(device, results[:1])
	assert.ErrorIs(t, err, vertex.ErrUpload)
	assert.True(t, buffers[0].Empty())
}

func TestMesherBuilderOptions(t *testing.T) {
	m := NewMesher(WithWorkers(0), WithQueueSize(-1), WithLogger(nil)).(*mesher)
	defer m.Close()
	assert.Equal(t, 4, m.workers)
	assert.Equal(t, 256, m.queueSize)
	assert.NotNil(t, m.logger)
}
