package main

import (
	"github.com/Carmen-Shannon/oxy-vertex/common"
	"github.com/Carmen-Shannon/oxy-vertex/engine/profiler"
)

// rotationSpeed is the camera orbit speed in radians per second.
const rotationSpeed = 0.3

// demoState is the interactive state shared by both backends' frame loops.
type demoState struct {
	paused   bool
	showGrid bool
	angle    float32
	lastTime float64

	profiling bool
	prof      *profiler.Profiler
}

func newDemoState(now float64, prof *profiler.Profiler) *demoState {
	return &demoState{
		showGrid:  true,
		lastTime:  now,
		profiling: prof != nil,
		prof:      prof,
	}
}

// handleKey applies a key press: space pauses the orbit, G toggles the grid, P toggles profiling.
func (d *demoState) handleKey(keyCode uint32) {
	switch keyCode {
	case common.KeySpace:
		d.paused = !d.paused
	case common.KeyG:
		d.showGrid = !d.showGrid
	case common.KeyP:
		d.profiling = !d.profiling && d.prof != nil
	}
}

// advance moves the orbit to time now and returns the camera angle.
func (d *demoState) advance(now float64) float32 {
	if !d.paused {
		d.angle += float32(now-d.lastTime) * rotationSpeed
	}
	d.lastTime = now
	return d.angle
}

// endFrame ticks the profiler when profiling is on.
func (d *demoState) endFrame() {
	if d.profiling {
		d.prof.Tick()
	}
}
