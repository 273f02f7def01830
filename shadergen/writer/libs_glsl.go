package writer

// glslLibs maps helper-library dependency identifiers to their GLSL source.
// The bodies are shared by every dialect of the family; they stick to GLSL
// 3.00-compatible constructs.
var glslLibs = map[string]string{
	"lib_common": `vec4 SG_TransformPositionRet(mat4 m, vec4 v) { return m * v; }
void SG_TransformPosition(mat4 m, vec4 v, out vec4 r) { r = m * v; }
void SG_TransformNormal(mat4 m, vec3 n, out vec3 r) { r = normalize((m * vec4(n, 0.0)).xyz); }
`,

	"lib_lighting": `void SG_LightAmbient(vec4 ambient, vec4 surfaceDiffuse, vec4 surfaceEmissive, out vec4 colour) {
	colour = surfaceEmissive + ambient * surfaceDiffuse;
	colour.a = surfaceDiffuse.a;
}
void SG_LightDirectionalDiffuse(vec3 normal, vec4 direction, vec4 lightDiffuse, vec4 surfaceDiffuse, inout vec4 colour) {
	float nDotL = max(dot(normal, -normalize(direction.xyz)), 0.0);
	colour.rgb += nDotL * lightDiffuse.rgb * surfaceDiffuse.rgb;
}
void SG_LightPointDiffuse(vec4 worldPos, vec3 normal, vec4 lightPos, vec4 attenuation, vec4 lightDiffuse, vec4 surfaceDiffuse, inout vec4 colour) {
	vec3 toLight = lightPos.xyz - worldPos.xyz;
	float dist = length(toLight);
	float nDotL = max(dot(normal, toLight / dist), 0.0);
	float atten = 1.0 / (attenuation.y + attenuation.z * dist + attenuation.w * dist * dist);
	colour.rgb += nDotL * atten * lightDiffuse.rgb * surfaceDiffuse.rgb;
}
void SG_LightSpotDiffuse(vec4 worldPos, vec3 normal, vec4 lightPos, vec4 direction, vec4 attenuation, vec4 spotParams, vec4 lightDiffuse, vec4 surfaceDiffuse, inout vec4 colour) {
	vec3 toLight = lightPos.xyz - worldPos.xyz;
	float dist = length(toLight);
	vec3 l = toLight / dist;
	float nDotL = max(dot(normal, l), 0.0);
	float atten = 1.0 / (attenuation.y + attenuation.z * dist + attenuation.w * dist * dist);
	float rho = dot(-normalize(direction.xyz), l);
	float spot = clamp((rho - spotParams.y) / (spotParams.x - spotParams.y), 0.0, 1.0);
	colour.rgb += nDotL * atten * spot * lightDiffuse.rgb * surfaceDiffuse.rgb;
}
`,

	"lib_texturing": `void SG_SampleTexture2D(sampler2D s, vec2 uv, out vec4 texel) { texel = texture(s, uv); }
void SG_SampleTextureCube(samplerCube s, vec3 dir, out vec4 texel) { texel = texture(s, dir); }
`,

	"lib_fog": `void SG_CameraDepth(vec4 cameraPos, vec4 worldPos, out float depth) { depth = length(worldPos.xyz - cameraPos.xyz); }
void SG_FogFactorLinear(float depth, vec4 fogParams, out float factor) {
	factor = clamp((fogParams.z - depth) * fogParams.w, 0.0, 1.0);
}
void SG_FogFactorExp(float depth, vec4 fogParams, out float factor) {
	factor = clamp(1.0 / exp(depth * fogParams.x), 0.0, 1.0);
}
void SG_FogFactorExp2(float depth, vec4 fogParams, out float factor) {
	factor = clamp(1.0 / exp(depth * fogParams.x * depth * fogParams.x), 0.0, 1.0);
}
void SG_ApplyFog(float factor, vec4 fogColour, inout vec4 colour) {
	colour.rgb = mix(fogColour.rgb, colour.rgb, factor);
}
`,

	"lib_alpha_test": `void SG_AlphaTest(float threshold, vec4 colour) {
	if (colour.a < threshold) {
		discard;
	}
}
`,

	"lib_skinning": `void SG_SkinPosition(vec4 position, vec4 weights, ivec4 indices, mat3x4 bones[SG_BONE_COUNT], out vec4 skinned) {
	vec3 p = vec3(0.0);
	p += (position * bones[indices.x]) * weights.x;
	p += (position * bones[indices.y]) * weights.y;
	p += (position * bones[indices.z]) * weights.z;
	p += (position * bones[indices.w]) * weights.w;
	skinned = vec4(p, 1.0);
}
void SG_SkinNormal(vec3 normal, vec4 weights, ivec4 indices, mat3x4 bones[SG_BONE_COUNT], out vec3 skinned) {
	vec3 n = vec3(0.0);
	n += (vec4(normal, 0.0) * bones[indices.x]) * weights.x;
	n += (vec4(normal, 0.0) * bones[indices.y]) * weights.y;
	n += (vec4(normal, 0.0) * bones[indices.z]) * weights.z;
	n += (vec4(normal, 0.0) * bones[indices.w]) * weights.w;
	skinned = normalize(n);
}
`,
}
