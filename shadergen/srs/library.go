package srs

// Dependency identifiers the built-in modules declare on their programs. Each
// writer maps these to a target-language helper-function library; a language
// missing a requested library fails emission for the pass.
const (
	// DepCommon holds shared transform helpers (world position, normal transform).
	DepCommon = "lib_common"

	// DepLighting holds the fixed-function lighting helpers.
	DepLighting = "lib_lighting"

	// DepTexturing holds the texture sampling helpers.
	DepTexturing = "lib_texturing"

	// DepFog holds the fog factor and blend helpers.
	DepFog = "lib_fog"

	// DepAlphaTest holds the alpha rejection helper.
	DepAlphaTest = "lib_alpha_test"

	// DepSkinning holds the bone-palette skinning helpers.
	DepSkinning = "lib_skinning"
)

// Helper invocation names emitted by the built-in modules. The bodies live in
// the writers' per-language libraries; the IR only records the call.
const (
	// FuncTransformPosition computes a world-space position: (world, position, out worldPos).
	FuncTransformPosition = "SG_TransformPosition"

	// FuncTransformNormal rotates a normal into world space: (worldIT, normal, out worldNormal).
	FuncTransformNormal = "SG_TransformNormal"

	// FuncLightAmbient seeds the lit colour: (ambient, surfaceDiffuse, surfaceEmissive, out colour).
	FuncLightAmbient = "SG_LightAmbient"

	// FuncLightDirectional accumulates a directional light: (worldNormal, direction, lightDiffuse, surfaceDiffuse, inout colour).
	FuncLightDirectional = "SG_LightDirectionalDiffuse"

	// FuncLightPoint accumulates a point light: (worldPos, worldNormal, lightPos, attenuation, lightDiffuse, surfaceDiffuse, inout colour).
	FuncLightPoint = "SG_LightPointDiffuse"

	// FuncLightSpot accumulates a spot light: (worldPos, worldNormal, lightPos, direction, attenuation, spotParams, lightDiffuse, surfaceDiffuse, inout colour).
	FuncLightSpot = "SG_LightSpotDiffuse"

	// FuncSampleTexture2D samples a 2D texture: (sampler, uv, out texel).
	FuncSampleTexture2D = "SG_SampleTexture2D"

	// FuncSampleTextureCube samples a cube texture: (sampler, direction, out texel).
	FuncSampleTextureCube = "SG_SampleTextureCube"

	// FuncFogFactorLinear computes a linear fog factor: (depth, fogParams, out factor).
	FuncFogFactorLinear = "SG_FogFactorLinear"

	// FuncFogFactorExp computes an exponential fog factor: (depth, fogParams, out factor).
	FuncFogFactorExp = "SG_FogFactorExp"

	// FuncFogFactorExp2 computes a squared-exponential fog factor: (depth, fogParams, out factor).
	FuncFogFactorExp2 = "SG_FogFactorExp2"

	// FuncCameraDepth computes view depth for fog: (cameraPos, worldPos, out depth).
	FuncCameraDepth = "SG_CameraDepth"

	// FuncApplyFog blends the fog colour: (factor, fogColour, inout colour).
	FuncApplyFog = "SG_ApplyFog"

	// FuncAlphaTest discards fragments under the threshold: (threshold, colour).
	FuncAlphaTest = "SG_AlphaTest"

	// FuncSkinPosition blends a position by the bone palette: (position, weights, indices, bones, out skinned).
	FuncSkinPosition = "SG_SkinPosition"

	// FuncSkinNormal blends a normal by the bone palette: (normal, weights, indices, bones, out skinned).
	FuncSkinNormal = "SG_SkinNormal"
)

// Shared pixel-stage local names. Modules that contribute to the fragment
// colour chain resolve the same named local so their atoms compose.
const (
	// localColour is the running fragment colour local.
	localColour = "lColour"

	// localWorldPos is the vertex-stage world-space position local.
	localWorldPos = "lWorldPos"

	// localWorldNormal is the vertex-stage world-space normal local.
	localWorldNormal = "lWorldNormal"
)
