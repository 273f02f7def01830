// types.go defines the closed type vocabulary of the shader IR: pipeline stages,
// GPU value types, vertex semantics, parameter content classes, and channel masks.
// Every Parameter, Operand, and Atom in a Program is described in these terms, and
// the writers map them to target-language syntax.
package ir

// Stage identifies which programmable pipeline stage a Program or Function targets.
type Stage int

const (
	// StageVertex is the vertex processing stage.
	StageVertex Stage = iota

	// StagePixel is the fragment/pixel processing stage.
	StagePixel
)

// String returns the lowercase stage name used in generated program labels.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StagePixel:
		return "pixel"
	default:
		return "unknown"
	}
}

// GpuType identifies the value type of a Parameter. Scalars, vectors, matrices,
// and sampler kinds share one enumeration so a Parameter is fully described by a
// single type field plus an optional array size.
type GpuType int

const (
	// TypeVoid is the absence of a value. Only valid as a placeholder.
	TypeVoid GpuType = iota

	// TypeFloat is a single 32-bit float.
	TypeFloat

	// TypeFloat2 is a 2-component float vector.
	TypeFloat2

	// TypeFloat3 is a 3-component float vector.
	TypeFloat3

	// TypeFloat4 is a 4-component float vector.
	TypeFloat4

	// TypeMatrix3 is a 3x3 float matrix.
	TypeMatrix3

	// TypeMatrix4 is a 4x4 float matrix.
	TypeMatrix4

	// TypeMatrix3x4 is a 3x4 float matrix, used for packed bone palettes.
	TypeMatrix3x4

	// TypeInt is a single 32-bit signed integer.
	TypeInt

	// TypeInt4 is a 4-component signed integer vector.
	TypeInt4

	// TypeUInt is a single 32-bit unsigned integer.
	TypeUInt

	// TypeSampler1D is a 1D texture sampler.
	TypeSampler1D

	// TypeSampler2D is a 2D texture sampler.
	TypeSampler2D

	// TypeSampler3D is a 3D (volume) texture sampler.
	TypeSampler3D

	// TypeSamplerCube is a cube map sampler.
	TypeSamplerCube

	// TypeSampler2DShadow is a 2D depth-comparison sampler used for shadow maps.
	TypeSampler2DShadow

	// TypeSampler2DArray is a 2D array texture sampler.
	TypeSampler2DArray
)

// IsSampler reports whether the type is one of the sampler kinds.
//
// Returns:
//   - bool: true for any TypeSampler* value
func (t GpuType) IsSampler() bool {
	return t >= TypeSampler1D && t <= TypeSampler2DArray
}

// IsMatrix reports whether the type is one of the matrix types. Writers for
// languages without an overloaded matrix product operator branch on this.
//
// Returns:
//   - bool: true for matrix types
func (t GpuType) IsMatrix() bool {
	return t == TypeMatrix3 || t == TypeMatrix4 || t == TypeMatrix3x4
}

// Components returns the number of scalar channels a value of this type carries.
// Matrices and samplers return 0 because they cannot be swizzled.
//
// Returns:
//   - int: the channel count, or 0 for non-swizzlable types
func (t GpuType) Components() int {
	switch t {
	case TypeFloat, TypeInt, TypeUInt:
		return 1
	case TypeFloat2:
		return 2
	case TypeFloat3:
		return 3
	case TypeFloat4, TypeInt4:
		return 4
	default:
		return 0
	}
}

// String returns a stable lowercase name for the type, used in generated
// parameter names and in fingerprint layout strings.
func (t GpuType) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeFloat:
		return "float"
	case TypeFloat2:
		return "float2"
	case TypeFloat3:
		return "float3"
	case TypeFloat4:
		return "float4"
	case TypeMatrix3:
		return "mat3"
	case TypeMatrix4:
		return "mat4"
	case TypeMatrix3x4:
		return "mat3x4"
	case TypeInt:
		return "int"
	case TypeInt4:
		return "int4"
	case TypeUInt:
		return "uint"
	case TypeSampler1D:
		return "sampler1d"
	case TypeSampler2D:
		return "sampler2d"
	case TypeSampler3D:
		return "sampler3d"
	case TypeSamplerCube:
		return "samplercube"
	case TypeSampler2DShadow:
		return "sampler2dshadow"
	case TypeSampler2DArray:
		return "sampler2darray"
	default:
		return "unknown"
	}
}

// Semantic identifies the meaning of a varying Parameter (vertex input or
// interpolant). Combined with an index and a ContentClass it forms the unique
// key under which parameters are shared between effect modules.
type Semantic int

const (
	// SemanticUnknown marks parameters with no fixed meaning (locals, uniforms).
	SemanticUnknown Semantic = iota

	// SemanticPosition is the vertex position (input) or clip-space position (output).
	SemanticPosition

	// SemanticBlendWeights is the per-vertex bone blend weight set.
	SemanticBlendWeights

	// SemanticBlendIndices is the per-vertex bone index set.
	SemanticBlendIndices

	// SemanticNormal is the vertex normal.
	SemanticNormal

	// SemanticColour is the per-vertex colour.
	SemanticColour

	// SemanticTangent is the vertex tangent.
	SemanticTangent

	// SemanticBinormal is the vertex binormal.
	SemanticBinormal

	// SemanticTexCoord is a texture coordinate set; the parameter index selects the set.
	SemanticTexCoord

	// SemanticUser is an application-defined semantic; the parameter index disambiguates.
	SemanticUser
)

// String returns the CamelCase semantic name used when generating parameter names.
func (s Semantic) String() string {
	switch s {
	case SemanticPosition:
		return "Position"
	case SemanticBlendWeights:
		return "BlendWeights"
	case SemanticBlendIndices:
		return "BlendIndices"
	case SemanticNormal:
		return "Normal"
	case SemanticColour:
		return "Colour"
	case SemanticTangent:
		return "Tangent"
	case SemanticBinormal:
		return "Binormal"
	case SemanticTexCoord:
		return "Texcoord"
	case SemanticUser:
		return "User"
	default:
		return "Unknown"
	}
}

// ContentClass identifies where a Parameter lives in the program.
type ContentClass int

const (
	// ClassVertexInput is a per-vertex attribute consumed by the vertex stage.
	ClassVertexInput ContentClass = iota

	// ClassInterpolant is a vertex-stage output / pixel-stage input varying.
	ClassInterpolant

	// ClassPixelOutput is a pixel-stage render target output.
	ClassPixelOutput

	// ClassUniform is a per-draw constant owned by the Program.
	ClassUniform

	// ClassSampler is a texture sampler with an integer binding slot.
	ClassSampler

	// ClassLocal is a function-scope temporary.
	ClassLocal

	// ClassConstant is an inline literal value; never declared, emitted in place.
	ClassConstant
)

// String returns the lowercase class name used in fingerprint layout strings.
func (c ContentClass) String() string {
	switch c {
	case ClassVertexInput:
		return "in"
	case ClassInterpolant:
		return "varying"
	case ClassPixelOutput:
		return "out"
	case ClassUniform:
		return "uniform"
	case ClassSampler:
		return "sampler"
	case ClassLocal:
		return "local"
	case ClassConstant:
		return "const"
	default:
		return "unknown"
	}
}

// ChannelMask selects a subset of the x/y/z/w channels of a vector value.
// Operands carry a mask so atoms can read or write individual channels.
type ChannelMask uint8

const (
	// MaskX selects the first channel.
	MaskX ChannelMask = 1 << iota

	// MaskY selects the second channel.
	MaskY

	// MaskZ selects the third channel.
	MaskZ

	// MaskW selects the fourth channel.
	MaskW
)

const (
	// MaskNone selects no channels; operands with MaskNone use the whole value unswizzled.
	MaskNone ChannelMask = 0

	// MaskXY selects the first two channels.
	MaskXY = MaskX | MaskY

	// MaskXYZ selects the first three channels.
	MaskXYZ = MaskX | MaskY | MaskZ

	// MaskAll selects all four channels.
	MaskAll = MaskX | MaskY | MaskZ | MaskW
)

// Swizzle returns the target-language swizzle suffix for the mask, including the
// leading dot (e.g. ".xyz"). MaskNone and MaskAll return an empty string because
// the whole value is used as-is.
//
// Returns:
//   - string: the swizzle suffix, or "" when no swizzle is needed
func (m ChannelMask) Swizzle() string {
	if m == MaskNone || m == MaskAll {
		return ""
	}
	s := make([]byte, 0, 5)
	s = append(s, '.')
	if m&MaskX != 0 {
		s = append(s, 'x')
	}
	if m&MaskY != 0 {
		s = append(s, 'y')
	}
	if m&MaskZ != 0 {
		s = append(s, 'z')
	}
	if m&MaskW != 0 {
		s = append(s, 'w')
	}
	return string(s)
}

// Components returns the number of channels the mask selects. MaskNone reports 0.
//
// Returns:
//   - int: the selected channel count
func (m ChannelMask) Components() int {
	n := 0
	for _, bit := range [4]ChannelMask{MaskX, MaskY, MaskZ, MaskW} {
		if m&bit != 0 {
			n++
		}
	}
	return n
}
