package engine

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindowFactory replaces the function that opens the platform window.
//
// Parameters:
//   - factory: the window factory, ignored if nil
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindowFactory(factory WindowFactory) EngineBuilderOption {
	return func(e *engine) {
		if factory != nil {
			e.newWindow = factory
		}
	}
}

// WithRendererFactory replaces the function that creates the renderer for the window.
//
// Parameters:
//   - factory: the renderer factory, ignored if nil
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRendererFactory(factory RendererFactory) EngineBuilderOption {
	return func(e *engine) {
		if factory != nil {
			e.newRenderer = factory
		}
	}
}
