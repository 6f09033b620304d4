package gl_driver

import "log/slog"

// GLDriverBuilderOption is a functional option used to configure the OpenGL driver during construction.
type GLDriverBuilderOption func(*glDriver)

// WithCoreProfile skips the GL_CONTEXT_PROFILE_MASK query and reports the given profile instead.
//
// Parameters:
//   - core: true to report a core profile context
//
// Returns:
//   - GLDriverBuilderOption: a function that overrides the capability profile
func WithCoreProfile(core bool) GLDriverBuilderOption {
	return func(d *glDriver) {
		d.forceCore = &core
	}
}

// WithLogger sets the logger the driver reports context information to.
//
// Parameters:
//   - logger: the structured logger, nil keeps slog.Default()
//
// Returns:
//   - GLDriverBuilderOption: a function that sets the logger for the driver
func WithLogger(logger *slog.Logger) GLDriverBuilderOption {
	return func(d *glDriver) {
		if logger != nil {
			d.logger = logger
		}
	}
}
