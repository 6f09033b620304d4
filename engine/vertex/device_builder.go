package vertex

import "log/slog"

// DeviceBuilderOption is a functional option applied to a Device during construction via NewDevice.
type DeviceBuilderOption func(*Device)

// WithLogger sets the structured logger used by the device and every VertexBuffer created on it.
// A nil logger keeps slog.Default().
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - DeviceBuilderOption: a function that applies the logger option to a Device
func WithLogger(logger *slog.Logger) DeviceBuilderOption {
	return func(d *Device) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithForcedProfile skips the driver capability query and uses the given profile instead.
// Forcing ProfileLegacy is valid on compatibility contexts that also expose vertex array objects;
// forcing ProfileCore on a driver without vertex array objects is not.
//
// Parameters:
//   - p: the profile to use
//
// Returns:
//   - DeviceBuilderOption: a function that applies the forced profile to a Device
func WithForcedProfile(p Profile) DeviceBuilderOption {
	return func(d *Device) {
		d.forcedProfile = &p
	}
}
