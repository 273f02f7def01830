// host.go defines the narrow interfaces the shader generator requires from the
// host rendering engine: read access to fixed-function pass state, write access
// to materials and techniques, the scene-state queries that drive invalidation,
// and the GPU program compiler boundary. The generator never depends on a
// concrete engine; hosts adapt their own material system to these interfaces,
// and memory.go provides a complete in-memory reference implementation.
package host

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// FogMode identifies the fixed-function fog equation active on a pass.
type FogMode int

const (
	// FogNone disables fog.
	FogNone FogMode = iota

	// FogLinear fades linearly between a start and end distance.
	FogLinear

	// FogExp fades exponentially with density.
	FogExp

	// FogExp2 fades with the square of density.
	FogExp2
)

// LightType identifies a dynamic light's kind.
type LightType int

const (
	// LightDirectional is an infinitely distant light with direction only.
	LightDirectional LightType = iota

	// LightPoint is a positional light with attenuation.
	LightPoint

	// LightSpot is a positional light with a cone.
	LightSpot
)

// LightCounts is the per-type active light count vector: directional, point,
// spot, in that order.
type LightCounts [3]int

// Total returns the sum of all three components.
//
// Returns:
//   - int: the total light count
func (lc LightCounts) Total() int {
	return lc[0] + lc[1] + lc[2]
}

// AnyGreaterThan reports whether any component of lc exceeds the corresponding
// component of other. This is the monotone-refresh test used by scheme
// invalidation: count increases invalidate, decreases are tolerated.
//
// Parameters:
//   - other: the cached vector to compare against
//
// Returns:
//   - bool: true if lc[i] > other[i] for some i
func (lc LightCounts) AnyGreaterThan(other LightCounts) bool {
	return lc[0] > other[0] || lc[1] > other[1] || lc[2] > other[2]
}

// IlluminationStage tags a pass within the host's additive-lighting pass
// sequence.
type IlluminationStage int

const (
	// IlluminationUnknown marks a pass outside any illumination sequence.
	IlluminationUnknown IlluminationStage = iota

	// IlluminationAmbient is the ambient base pass.
	IlluminationAmbient

	// IlluminationPerLight is an additive per-light pass.
	IlluminationPerLight

	// IlluminationDecal is the final texture decal pass.
	IlluminationDecal
)

// TextureKind identifies a texture unit's sampler dimensionality.
type TextureKind int

const (
	// Texture1D is a one-dimensional texture.
	Texture1D TextureKind = iota

	// Texture2D is a standard two-dimensional texture.
	Texture2D

	// Texture3D is a volume texture.
	Texture3D

	// TextureCube is a cube map.
	TextureCube

	// Texture2DArray is a layered two-dimensional texture.
	Texture2DArray
)

// SamplerType maps the texture kind to the IR sampler type used when resolving
// the unit's sampler parameter.
//
// Returns:
//   - ir.GpuType: the corresponding TypeSampler* value
func (k TextureKind) SamplerType() ir.GpuType {
	switch k {
	case Texture1D:
		return ir.TypeSampler1D
	case Texture3D:
		return ir.TypeSampler3D
	case TextureCube:
		return ir.TypeSamplerCube
	case Texture2DArray:
		return ir.TypeSampler2DArray
	default:
		return ir.TypeSampler2D
	}
}

// TextureUnit exposes the per-layer texture state the texturing effect module
// reads from a source pass.
type TextureUnit interface {
	// Name retrieves the texture unit's name (usually the texture name).
	//
	// Returns:
	//   - string: the unit name
	Name() string

	// Kind retrieves the texture dimensionality.
	//
	// Returns:
	//   - TextureKind: the unit's texture kind
	Kind() TextureKind

	// TexCoordSet retrieves the texture coordinate set index this unit samples with.
	//
	// Returns:
	//   - int: the coordinate set index
	TexCoordSet() int
}

// GpuProgram is the host's handle to a compiled GPU program. The generator
// treats it as opaque beyond its name.
type GpuProgram interface {
	// Name retrieves the program's unique name (derived from the content fingerprint).
	//
	// Returns:
	//   - string: the program name
	Name() string
}

// Pass exposes one material pass: the fixed-function state the render state
// builder scans, and the programmable-stage mutators the generator drives when
// attaching generated programs and auto-constant bindings.
type Pass interface {
	// HasVertexProgram reports whether a vertex program is already attached.
	//
	// Returns:
	//   - bool: true when the vertex stage is programmable
	HasVertexProgram() bool

	// HasFragmentProgram reports whether a fragment program is already attached.
	//
	// Returns:
	//   - bool: true when the fragment stage is programmable
	HasFragmentProgram() bool

	// LightingEnabled reports whether fixed-function dynamic lighting is on.
	//
	// Returns:
	//   - bool: the lighting flag
	LightingEnabled() bool

	// VertexColourTracking reports whether per-vertex colour tracking is enabled.
	//
	// Returns:
	//   - bool: the colour tracking flag
	VertexColourTracking() bool

	// FogMode retrieves the fixed-function fog mode active on this pass.
	//
	// Returns:
	//   - FogMode: the fog mode
	FogMode() FogMode

	// AlphaRejectEnabled reports whether alpha rejection is configured.
	//
	// Returns:
	//   - bool: the alpha reject flag
	AlphaRejectEnabled() bool

	// TextureUnits retrieves the pass's texture layers in blend order.
	//
	// Returns:
	//   - []TextureUnit: the texture units
	TextureUnits() []TextureUnit

	// SetVertexProgram attaches a compiled vertex program, or detaches with nil.
	//
	// Parameters:
	//   - p: the compiled program handle
	SetVertexProgram(p GpuProgram)

	// SetFragmentProgram attaches a compiled fragment program, or detaches with nil.
	//
	// Parameters:
	//   - p: the compiled program handle
	SetFragmentProgram(p GpuProgram)

	// BindAutoConstant registers an auto-constant entry for a named uniform so
	// the host refreshes it from the auto-parameter source each draw.
	//
	// Parameters:
	//   - paramName: the uniform name in the generated program
	//   - tag: the auto-constant tag
	//   - data: the tag's integer payload (e.g. light index)
	BindAutoConstant(paramName string, tag ir.AutoConstant, data uint32)
}

// Technique is an ordered pass list on a material, tagged with a scheme name.
type Technique interface {
	// Passes retrieves the technique's passes in render order.
	//
	// Returns:
	//   - []Pass: the passes
	Passes() []Pass

	// SchemeName retrieves the material scheme this technique renders under.
	//
	// Returns:
	//   - string: the scheme name
	SchemeName() string

	// SetSchemeName assigns the material scheme for this technique.
	//
	// Parameters:
	//   - name: the scheme name
	SetSchemeName(name string)

	// CreatePass appends a new pass to the technique.
	//
	// Returns:
	//   - Pass: the new pass
	CreatePass() Pass

	// RemovePass removes a pass from the technique.
	//
	// Parameters:
	//   - p: the pass to remove
	RemovePass(p Pass)
}

// IlluminationPass pairs an auto-generated additive-lighting pass with its
// stage tag and the original pass it derives from.
type IlluminationPass struct {
	// Stage is the illumination stage tag.
	Stage IlluminationStage

	// Pass is the auto-generated pass.
	Pass Pass

	// Original is the user-authored pass the illumination pass derives from.
	Original Pass
}

// IlluminationProvider is implemented by host techniques that expand into an
// additive illumination-pass sequence. Techniques without the interface are
// treated as having no illumination passes.
type IlluminationProvider interface {
	// IlluminationPasses retrieves the expanded illumination pass sequence.
	//
	// Returns:
	//   - []IlluminationPass: the sequence in render order
	IlluminationPasses() []IlluminationPass
}

// Material identifies a host material by (name, resource group) and owns its
// techniques plus an untyped user-data channel effect modules read during
// builds (e.g. the hardware-skinning bone-count record).
type Material interface {
	// Name retrieves the material name.
	//
	// Returns:
	//   - string: the material name
	Name() string

	// Group retrieves the resource group the material belongs to.
	//
	// Returns:
	//   - string: the resource group name
	Group() string

	// Techniques retrieves the material's techniques in declaration order.
	//
	// Returns:
	//   - []Technique: the techniques
	Techniques() []Technique

	// CreateTechnique appends a new empty technique to the material.
	//
	// Returns:
	//   - Technique: the new technique
	CreateTechnique() Technique

	// RemoveTechnique removes a technique and its passes from the material.
	//
	// Parameters:
	//   - t: the technique to remove
	RemoveTechnique(t Technique)

	// UserData retrieves the side-data value stored under a key, or nil.
	//
	// Parameters:
	//   - key: the slot key
	//
	// Returns:
	//   - any: the stored value, or nil if the slot is empty
	UserData(key string) any

	// SetUserData stores a side-data value under a key. Writes must happen
	// outside a build.
	//
	// Parameters:
	//   - key: the slot key
	//   - v: the value to store (nil clears the slot)
	SetUserData(key string, v any)
}

// UserDataAs retrieves a material user-data slot decoded to a concrete type.
// Returns the zero value and false when the slot is empty or holds another type.
//
// Parameters:
//   - m: the material to read from
//   - key: the slot key
//
// Returns:
//   - T: the decoded value
//   - bool: true when the slot held a T
func UserDataAs[T any](m Material, key string) (T, bool) {
	v, ok := m.UserData(key).(T)
	return v, ok
}

// SceneManager exposes the scene-state queries polled at the start of each
// visible-object pass to drive scheme invalidation.
type SceneManager interface {
	// ActiveLightCounts retrieves the current per-type active light counts.
	//
	// Returns:
	//   - LightCounts: (directional, point, spot)
	ActiveLightCounts() LightCounts

	// FogMode retrieves the scene-level fog mode.
	//
	// Returns:
	//   - FogMode: the active fog mode
	FogMode() FogMode
}

// Viewport exposes the per-viewport state the pre-find-visible-objects hook
// reads.
type Viewport interface {
	// MaterialScheme retrieves the material scheme name active on this viewport.
	//
	// Returns:
	//   - string: the scheme name
	MaterialScheme() string
}

// Light is one active dynamic light in the per-draw light list.
type Light interface {
	// Type retrieves the light's kind.
	//
	// Returns:
	//   - LightType: directional, point, or spot
	Type() LightType
}

// AutoParamSource supplies per-draw auto-constant values. The generator passes
// it through to per-draw parameter hooks; only hosts and effect modules
// interpret the values.
type AutoParamSource interface {
	// AutoValue retrieves the current value for an auto-constant tag as a flat
	// float slice (vectors are 4 elements, matrices 16).
	//
	// Parameters:
	//   - tag: the auto-constant tag
	//   - data: the tag's integer payload
	//
	// Returns:
	//   - []float32: the current value, or nil if the tag is unknown
	AutoValue(tag ir.AutoConstant, data uint32) []float32
}

// Renderable is the host's opaque per-object handle passed to per-draw hooks.
type Renderable any

// ProgramCompiler is the boundary to the host's GPU program compiler: it
// receives generated source text and returns a compiled program handle or a
// compile error.
type ProgramCompiler interface {
	// Compile submits generated source for one pipeline stage.
	//
	// Parameters:
	//   - stage: the pipeline stage the source targets
	//   - language: the target language tag the source was written in
	//   - profile: the host-specific profile string (opaque to the generator)
	//   - name: the program name derived from the content fingerprint
	//   - source: the generated source text
	//
	// Returns:
	//   - GpuProgram: the compiled program handle
	//   - error: the compile failure, if any
	Compile(stage ir.Stage, language, profile, name, source string) (GpuProgram, error)
}
