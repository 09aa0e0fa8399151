package renderer

// RendererBuilderOption is a functional option for configuring a Renderer before its backend is created.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the present mode applied when the surface is first configured.
//
// Parameters:
//   - mode: VSync or Uncapped
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer requests the fallback (software) adapter.
// Useful on headless machines and in CI.
//
// Parameters:
//   - force: if true, the backend asks for the fallback adapter
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
