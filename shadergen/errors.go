package shadergen

import "errors"

// ErrSourceTechniqueMissing is returned when a shader-based technique is
// requested for a source scheme the material has no technique under.
var ErrSourceTechniqueMissing = errors.New("shadergen: material has no technique for the source scheme")

// ErrMaterialNotRegistered is returned when a per-pass render state is
// requested for a material with no shader-based technique on the scheme.
var ErrMaterialNotRegistered = errors.New("shadergen: material has no shader-based technique on this scheme")

// ErrPassIndexOutOfRange is returned when a per-pass render state is requested
// for a pass index the source technique does not have.
var ErrPassIndexOutOfRange = errors.New("shadergen: pass index out of range")

// ErrBuildFailed wraps a per-pass build failure: a module resolve error, a
// link error, or a downstream writer/compile error. The destination pass is
// removed and the source pass keeps rendering.
var ErrBuildFailed = errors.New("shadergen: target render state build failed")
