package srs

// RegisterBuiltins installs the factories for every built-in fixed-function
// coverage module. Called once at generator initialization.
//
// Parameters:
//   - r: the registry to install into
//
// Returns:
//   - error: ErrDuplicateFactory if any tag is already taken
func RegisterBuiltins(r *Registry) error {
	factories := []Factory{
		NewTransformFactory(),
		NewVertexColourFactory(),
		NewPerVertexLightingFactory(),
		NewTexturingFactory(),
		NewFogFactory(),
		NewAlphaTestFactory(),
		NewHardwareSkinningFactory(),
	}
	for _, f := range factories {
		if err := r.Register(f); err != nil {
			return err
		}
	}
	return nil
}
