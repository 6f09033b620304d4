package vertex

import (
	"log/slog"
)

// Stats counts the GPU work issued through a Device.
// Live counters track resources currently held; frame counters accumulate until ResetFrameStats.
type Stats struct {
	// LiveBuffers is the number of buffer objects currently held by populated VertexBuffers.
	LiveBuffers int
	// LiveVertexArrays is the number of vertex array objects currently held (core profile only).
	LiveVertexArrays int
	// Uploads is the number of successful uploads since the last reset.
	Uploads int
	// BytesUploaded is the number of bytes uploaded since the last reset.
	BytesUploaded int
	// DrawCalls is the number of draw calls issued since the last reset.
	DrawCalls int
	// VerticesDrawn is the number of vertices drawn since the last reset.
	VerticesDrawn int
}

// Device binds a Driver to the capability profile strategy queried from it.
//
// The profile is queried exactly once, when the Device is created, and every VertexBuffer created on the
// Device shares the cached strategy. A Device must only be used from the graphics context thread.
type Device struct {
	driver  Driver
	profile profile
	logger  *slog.Logger

	forcedProfile *Profile

	stats Stats
}

// NewDevice creates a Device for the given driver. The driver's CoreProfile capability is queried once
// unless a profile is forced with WithForcedProfile.
//
// Parameters:
//   - driver: the graphics backend boundary
//   - options: variadic list of DeviceBuilderOption functions to configure the Device
//
// Returns:
//   - *Device: the configured device
func NewDevice(driver Driver, options ...DeviceBuilderOption) *Device {
	d := &Device{
		driver: driver,
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(d)
	}

	p := ProfileLegacy
	switch {
	case d.forcedProfile != nil:
		p = *d.forcedProfile
	case driver.CoreProfile():
		p = ProfileCore
	}
	d.profile = newProfile(p, driver)
	d.logger.Debug("vertex device created", "profile", p)

	return d
}

// Profile returns the capability profile selected for this device.
//
// Returns:
//   - Profile: ProfileCore or ProfileLegacy
func (d *Device) Profile() Profile {
	return d.profile.kind()
}

// Driver returns the backend the device issues commands to.
//
// Returns:
//   - Driver: the underlying driver
func (d *Device) Driver() Driver {
	return d.driver
}

// Logger returns the structured logger used by the device and its buffers.
//
// Returns:
//   - *slog.Logger: the device logger
func (d *Device) Logger() *slog.Logger {
	return d.logger
}

// Stats returns a snapshot of the device counters.
//
// Returns:
//   - Stats: the current counters
func (d *Device) Stats() Stats {
	return d.stats
}

// ResetFrameStats zeroes the per-frame counters (uploads, bytes, draw calls, vertices drawn) while
// keeping the live resource counts.
func (d *Device) ResetFrameStats() {
	d.stats = Stats{
		LiveBuffers:      d.stats.LiveBuffers,
		LiveVertexArrays: d.stats.LiveVertexArrays,
	}
}

func (d *Device) trackAllocate(h handles) {
	d.stats.LiveBuffers++
	if h.vertexArray != 0 {
		d.stats.LiveVertexArrays++
	}
}

func (d *Device) trackRelease(h handles) {
	d.stats.LiveBuffers--
	if h.vertexArray != 0 {
		d.stats.LiveVertexArrays--
	}
}
