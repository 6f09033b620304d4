package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-vertex/common"
	"github.com/Carmen-Shannon/oxy-vertex/engine/profiler"
	"github.com/stretchr/testify/assert"
)

func TestDemoStateKeys(t *testing.T) {
	d := newDemoState(0, nil)
	assert.True(t, d.showGrid)
	assert.False(t, d.profiling)

	d.handleKey(common.KeyG)
	assert.False(t, d.showGrid)
	d.handleKey(common.KeyP)
	assert.False(t, d.profiling, "profiling needs a profiler")
	d.endFrame()

	d = newDemoState(0, profiler.NewProfiler(profiler.WithLogger(testLogger())))
	assert.True(t, d.profiling)
	d.handleKey(common.KeyP)
	assert.False(t, d.profiling)
	d.handleKey(common.KeyP)
	assert.True(t, d.profiling)
}

func TestDemoStateAdvance(t *testing.T) {
	d := newDemoState(1, nil)
	assert.InDelta(t, 2*rotationSpeed, d.advance(3), 1e-6)

	d.handleKey(common.KeySpace)
	assert.InDelta(t, 2*rotationSpeed, d.advance(10), 1e-6)

	d.handleKey(common.KeySpace)
	assert.InDelta(t, 3*rotationSpeed, d.advance(11), 1e-6)
}
