package ir

import "fmt"

// AutoConstant is an opaque tag identifying a value the host engine's
// auto-parameter source can supply each draw (matrices, light properties, fog
// settings). The generator resolves uniforms against these tags and the host
// binds them; the tag vocabulary below covers the built-in effect modules, and
// hosts may define additional tags of their own.
type AutoConstant string

const (
	// AutoWorldMatrix is the object's world transform.
	AutoWorldMatrix AutoConstant = "world_matrix"

	// AutoViewMatrix is the camera view transform.
	AutoViewMatrix AutoConstant = "view_matrix"

	// AutoWorldViewProjMatrix is the combined world-view-projection transform.
	AutoWorldViewProjMatrix AutoConstant = "worldviewproj_matrix"

	// AutoInverseTransposeWorldMatrix transforms normals into world space.
	AutoInverseTransposeWorldMatrix AutoConstant = "inverse_transpose_world_matrix"

	// AutoCameraPositionWorld is the camera position in world space.
	AutoCameraPositionWorld AutoConstant = "camera_position"

	// AutoAmbientLightColour is the scene ambient light colour.
	AutoAmbientLightColour AutoConstant = "ambient_light_colour"

	// AutoLightPosition is light[data]'s position in world space (w=0 for directional).
	AutoLightPosition AutoConstant = "light_position"

	// AutoLightDirection is light[data]'s direction in world space.
	AutoLightDirection AutoConstant = "light_direction"

	// AutoLightDiffuseColour is light[data]'s diffuse colour.
	AutoLightDiffuseColour AutoConstant = "light_diffuse_colour"

	// AutoLightSpecularColour is light[data]'s specular colour.
	AutoLightSpecularColour AutoConstant = "light_specular_colour"

	// AutoLightAttenuation is light[data]'s (range, constant, linear, quadratic) vector.
	AutoLightAttenuation AutoConstant = "light_attenuation"

	// AutoSpotlightParams is light[data]'s (cos inner/2, cos outer/2, falloff, enabled) vector.
	AutoSpotlightParams AutoConstant = "spotlight_params"

	// AutoSurfaceDiffuse is the pass's material diffuse colour.
	AutoSurfaceDiffuse AutoConstant = "surface_diffuse_colour"

	// AutoSurfaceSpecular is the pass's material specular colour with shininess in w.
	AutoSurfaceSpecular AutoConstant = "surface_specular_colour"

	// AutoSurfaceEmissive is the pass's material emissive colour.
	AutoSurfaceEmissive AutoConstant = "surface_emissive_colour"

	// AutoFogColour is the scene fog colour.
	AutoFogColour AutoConstant = "fog_colour"

	// AutoFogParams is the (density, start, end, 1/(end-start)) fog vector.
	AutoFogParams AutoConstant = "fog_params"

	// AutoAlphaRejectValue is the pass's alpha rejection threshold in [0, 1].
	AutoAlphaRejectValue AutoConstant = "alpha_reject_value"

	// AutoBoneMatrixArray is the skinning bone palette; the parameter's array
	// size carries the bone count baked into the program.
	AutoBoneMatrixArray AutoConstant = "bone_matrix_array"
)

// AutoBinding pairs an AutoConstant tag with an optional integer payload. The
// payload disambiguates indexed tags, for example the light index of
// AutoLightDiffuseColour.
type AutoBinding struct {
	// Tag is the auto-constant identifier the host resolves each draw.
	Tag AutoConstant

	// Data is the tag's integer payload (e.g. light index). Zero when unused.
	Data uint32
}

// parameter is the implementation of the Parameter interface.
type parameter struct {
	name      string
	typ       GpuType
	semantic  Semantic
	index     int
	class     ContentClass
	arraySize int
	auto      *AutoBinding
	binding   int
	constant  []float32
}

// Parameter represents one shader-visible value: a vertex attribute, an
// interpolant, a uniform, a sampler, or a function-scope local. Parameters are
// owned by their Function or Program; effect modules obtain them through the
// resolve protocol and must never construct them directly, which is what makes
// the (semantic, index, class) triple canonical for sharing.
type Parameter interface {
	// Name retrieves the generated identifier, unique within the owning scope.
	//
	// Returns:
	//   - string: the parameter name as it appears in emitted source
	Name() string

	// Type retrieves the GPU value type.
	//
	// Returns:
	//   - GpuType: the parameter's type
	Type() GpuType

	// Semantic retrieves the varying semantic, or SemanticUnknown for
	// uniforms, samplers, and locals.
	//
	// Returns:
	//   - Semantic: the parameter's semantic
	Semantic() Semantic

	// Index retrieves the semantic index (e.g. the texture coordinate set).
	//
	// Returns:
	//   - int: the semantic index, 0 for unindexed semantics
	Index() int

	// Class retrieves the content class describing where the parameter lives.
	//
	// Returns:
	//   - ContentClass: the parameter's content class
	Class() ContentClass

	// ArraySize retrieves the array length, or 0 for a non-array parameter.
	//
	// Returns:
	//   - int: the array size (0 = scalar declaration)
	ArraySize() int

	// AutoBinding retrieves the auto-constant binding, or nil when the
	// parameter is not auto-bound.
	//
	// Returns:
	//   - *AutoBinding: the binding tag and payload, or nil
	AutoBinding() *AutoBinding

	// Binding retrieves the sampler binding slot. Only meaningful for
	// ClassSampler parameters; -1 otherwise.
	//
	// Returns:
	//   - int: the sampler binding slot, or -1
	Binding() int

	// ConstantValues retrieves the literal components of a ClassConstant
	// parameter, or nil for every other class.
	//
	// Returns:
	//   - []float32: the literal components, or nil
	ConstantValues() []float32

	// InterchangeableWith reports whether this parameter and other share the
	// same (semantic, index, class) triple and type, i.e. whether one could
	// stand in for the other across effect modules.
	//
	// Parameters:
	//   - other: the parameter to compare against
	//
	// Returns:
	//   - bool: true when the triples and types match
	InterchangeableWith(other Parameter) bool
}

var _ Parameter = &parameter{}

func (p *parameter) Name() string {
	return p.name
}

func (p *parameter) Type() GpuType {
	return p.typ
}

func (p *parameter) Semantic() Semantic {
	return p.semantic
}

func (p *parameter) Index() int {
	return p.index
}

func (p *parameter) Class() ContentClass {
	return p.class
}

func (p *parameter) ArraySize() int {
	return p.arraySize
}

func (p *parameter) AutoBinding() *AutoBinding {
	return p.auto
}

func (p *parameter) Binding() int {
	return p.binding
}

func (p *parameter) ConstantValues() []float32 {
	return p.constant
}

// ConstantFloat creates an inline float literal usable as a read operand.
//
// Parameters:
//   - v: the literal value
//
// Returns:
//   - Parameter: a ClassConstant parameter of TypeFloat
func ConstantFloat(v float32) Parameter {
	return &parameter{typ: TypeFloat, semantic: SemanticUnknown, class: ClassConstant, binding: -1, constant: []float32{v}}
}

// ConstantFloat4 creates an inline 4-component float literal usable as a read
// operand.
//
// Parameters:
//   - x, y, z, w: the literal components
//
// Returns:
//   - Parameter: a ClassConstant parameter of TypeFloat4
func ConstantFloat4(x, y, z, w float32) Parameter {
	return &parameter{typ: TypeFloat4, semantic: SemanticUnknown, class: ClassConstant, binding: -1, constant: []float32{x, y, z, w}}
}

func (p *parameter) InterchangeableWith(other Parameter) bool {
	return p.semantic == other.Semantic() &&
		p.index == other.Index() &&
		p.class == other.Class() &&
		p.typ == other.Type()
}

// layoutKey returns the canonical "class name:type[size]" string contributed to
// the program fingerprint for this parameter.
func (p *parameter) layoutKey() string {
	if p.arraySize > 0 {
		return fmt.Sprintf("%s %s:%s[%d]", p.class, p.name, p.typ, p.arraySize)
	}
	return fmt.Sprintf("%s %s:%s", p.class, p.name, p.typ)
}

// varyingName builds the canonical generated name for a varying parameter from
// its class prefix, semantic, and index. Indexed semantics always carry the
// index so re-indexed texcoords stay unique.
func varyingName(class ContentClass, semantic Semantic, index int) string {
	prefix := "i"
	if class == ClassInterpolant {
		prefix = "v"
	} else if class == ClassPixelOutput {
		prefix = "o"
	}
	if semantic == SemanticTexCoord || semantic == SemanticUser || index > 0 {
		return fmt.Sprintf("%s%s%d", prefix, semantic, index)
	}
	return prefix + semantic.String()
}
