package writer

// hlslLibs maps helper-library dependency identifiers to their HLSL source.
// Bodies mirror the GLSL library semantics; matrix products go through mul()
// and texture sampling takes the expanded texture/sampler pair.
var hlslLibs = map[string]string{
	"lib_common": `float4 SG_TransformPositionRet(float4x4 m, float4 v) { return mul(m, v); }
void SG_TransformPosition(float4x4 m, float4 v, out float4 r) { r = mul(m, v); }
void SG_TransformNormal(float4x4 m, float3 n, out float3 r) { r = normalize(mul(m, float4(n, 0.0)).xyz); }
`,

	"lib_lighting": `void SG_LightAmbient(float4 ambient, float4 surfaceDiffuse, float4 surfaceEmissive, out float4 colour) {
	colour = surfaceEmissive + ambient * surfaceDiffuse;
	colour.a = surfaceDiffuse.a;
}
void SG_LightDirectionalDiffuse(float3 normal, float4 direction, float4 lightDiffuse, float4 surfaceDiffuse, inout float4 colour) {
	float nDotL = max(dot(normal, -normalize(direction.xyz)), 0.0);
	colour.rgb += nDotL * lightDiffuse.rgb * surfaceDiffuse.rgb;
}
void SG_LightPointDiffuse(float4 worldPos, float3 normal, float4 lightPos, float4 attenuation, float4 lightDiffuse, float4 surfaceDiffuse, inout float4 colour) {
	float3 toLight = lightPos.xyz - worldPos.xyz;
	float dist = length(toLight);
	float nDotL = max(dot(normal, toLight / dist), 0.0);
	float atten = 1.0 / (attenuation.y + attenuation.z * dist + attenuation.w * dist * dist);
	colour.rgb += nDotL * atten * lightDiffuse.rgb * surfaceDiffuse.rgb;
}
void SG_LightSpotDiffuse(float4 worldPos, float3 normal, float4 lightPos, float4 direction, float4 attenuation, float4 spotParams, float4 lightDiffuse, float4 surfaceDiffuse, inout float4 colour) {
	float3 toLight = lightPos.xyz - worldPos.xyz;
	float dist = length(toLight);
	float3 l = toLight / dist;
	float nDotL = max(dot(normal, l), 0.0);
	float atten = 1.0 / (attenuation.y + attenuation.z * dist + attenuation.w * dist * dist);
	float rho = dot(-normalize(direction.xyz), l);
	float spot = saturate((rho - spotParams.y) / (spotParams.x - spotParams.y));
	colour.rgb += nDotL * atten * spot * lightDiffuse.rgb * surfaceDiffuse.rgb;
}
`,

	"lib_texturing": `void SG_SampleTexture2D(Texture2D t, SamplerState s, float2 uv, out float4 texel) { texel = t.Sample(s, uv); }
void SG_SampleTextureCube(TextureCube t, SamplerState s, float3 dir, out float4 texel) { texel = t.Sample(s, dir); }
`,

	"lib_fog": `void SG_CameraDepth(float4 cameraPos, float4 worldPos, out float depth) { depth = length(worldPos.xyz - cameraPos.xyz); }
void SG_FogFactorLinear(float depth, float4 fogParams, out float factor) {
	factor = saturate((fogParams.z - depth) * fogParams.w);
}
void SG_FogFactorExp(float depth, float4 fogParams, out float factor) {
	factor = saturate(1.0 / exp(depth * fogParams.x));
}
void SG_FogFactorExp2(float depth, float4 fogParams, out float factor) {
	factor = saturate(1.0 / exp(depth * fogParams.x * depth * fogParams.x));
}
void SG_ApplyFog(float factor, float4 fogColour, inout float4 colour) {
	colour.rgb = lerp(fogColour.rgb, colour.rgb, factor);
}
`,

	"lib_alpha_test": `void SG_AlphaTest(float threshold, float4 colour) {
	clip(colour.a - threshold);
}
`,

	"lib_skinning": `void SG_SkinPosition(float4 position, float4 weights, int4 indices, float3x4 bones[SG_BONE_COUNT], out float4 skinned) {
	float3 p = float3(0.0, 0.0, 0.0);
	p += mul(bones[indices.x], position) * weights.x;
	p += mul(bones[indices.y], position) * weights.y;
	p += mul(bones[indices.z], position) * weights.z;
	p += mul(bones[indices.w], position) * weights.w;
	skinned = float4(p, 1.0);
}
void SG_SkinNormal(float3 normal, float4 weights, int4 indices, float3x4 bones[SG_BONE_COUNT], out float3 skinned) {
	float3 n = float3(0.0, 0.0, 0.0);
	n += mul(bones[indices.x], float4(normal, 0.0)) * weights.x;
	n += mul(bones[indices.y], float4(normal, 0.0)) * weights.y;
	n += mul(bones[indices.z], float4(normal, 0.0)) * weights.z;
	n += mul(bones[indices.w], float4(normal, 0.0)) * weights.w;
	skinned = normalize(n);
}
`,
}
