package writer

// wgslLibs maps helper-library dependency identifiers to their WGSL source.
// Out and inout parameters are function-space pointers; swizzled writes are
// rebuilt with full vector constructors because WGSL has no component
// assignment through a swizzle.
var wgslLibs = map[string]string{
	"lib_common": `fn SG_TransformPositionRet(m : mat4x4<f32>, v : vec4<f32>) -> vec4<f32> { return m * v; }
fn SG_TransformPosition(m : mat4x4<f32>, v : vec4<f32>, r : ptr<function, vec4<f32>>) { *r = m * v; }
fn SG_TransformNormal(m : mat4x4<f32>, n : vec3<f32>, r : ptr<function, vec3<f32>>) { *r = normalize((m * vec4<f32>(n, 0.0)).xyz); }
`,

	"lib_lighting": `fn SG_LightAmbient(ambient : vec4<f32>, surfaceDiffuse : vec4<f32>, surfaceEmissive : vec4<f32>, colour : ptr<function, vec4<f32>>) {
	let c = surfaceEmissive + ambient * surfaceDiffuse;
	*colour = vec4<f32>(c.rgb, surfaceDiffuse.a);
}
fn SG_LightDirectionalDiffuse(normal : vec3<f32>, direction : vec4<f32>, lightDiffuse : vec4<f32>, surfaceDiffuse : vec4<f32>, colour : ptr<function, vec4<f32>>) {
	let nDotL = max(dot(normal, -normalize(direction.xyz)), 0.0);
	*colour = vec4<f32>((*colour).rgb + nDotL * lightDiffuse.rgb * surfaceDiffuse.rgb, (*colour).a);
}
fn SG_LightPointDiffuse(worldPos : vec4<f32>, normal : vec3<f32>, lightPos : vec4<f32>, attenuation : vec4<f32>, lightDiffuse : vec4<f32>, surfaceDiffuse : vec4<f32>, colour : ptr<function, vec4<f32>>) {
	let toLight = lightPos.xyz - worldPos.xyz;
	let dist = length(toLight);
	let nDotL = max(dot(normal, toLight / dist), 0.0);
	let atten = 1.0 / (attenuation.y + attenuation.z * dist + attenuation.w * dist * dist);
	*colour = vec4<f32>((*colour).rgb + nDotL * atten * lightDiffuse.rgb * surfaceDiffuse.rgb, (*colour).a);
}
fn SG_LightSpotDiffuse(worldPos : vec4<f32>, normal : vec3<f32>, lightPos : vec4<f32>, direction : vec4<f32>, attenuation : vec4<f32>, spotParams : vec4<f32>, lightDiffuse : vec4<f32>, surfaceDiffuse : vec4<f32>, colour : ptr<function, vec4<f32>>) {
	let toLight = lightPos.xyz - worldPos.xyz;
	let dist = length(toLight);
	let l = toLight / dist;
	let nDotL = max(dot(normal, l), 0.0);
	let atten = 1.0 / (attenuation.y + attenuation.z * dist + attenuation.w * dist * dist);
	let rho = dot(-normalize(direction.xyz), l);
	let spot = clamp((rho - spotParams.y) / (spotParams.x - spotParams.y), 0.0, 1.0);
	*colour = vec4<f32>((*colour).rgb + nDotL * atten * spot * lightDiffuse.rgb * surfaceDiffuse.rgb, (*colour).a);
}
`,

	"lib_texturing": `fn SG_SampleTexture2D(t : texture_2d<f32>, s : sampler, uv : vec2<f32>, texel : ptr<function, vec4<f32>>) { *texel = textureSample(t, s, uv); }
fn SG_SampleTextureCube(t : texture_cube<f32>, s : sampler, dir : vec3<f32>, texel : ptr<function, vec4<f32>>) { *texel = textureSample(t, s, dir); }
`,

	"lib_fog": `fn SG_CameraDepth(cameraPos : vec4<f32>, worldPos : vec4<f32>, depth : ptr<function, f32>) { *depth = length(worldPos.xyz - cameraPos.xyz); }
fn SG_FogFactorLinear(depth : f32, fogParams : vec4<f32>, factor : ptr<function, f32>) {
	*factor = clamp((fogParams.z - depth) * fogParams.w, 0.0, 1.0);
}
fn SG_FogFactorExp(depth : f32, fogParams : vec4<f32>, factor : ptr<function, f32>) {
	*factor = clamp(1.0 / exp(depth * fogParams.x), 0.0, 1.0);
}
fn SG_FogFactorExp2(depth : f32, fogParams : vec4<f32>, factor : ptr<function, f32>) {
	*factor = clamp(1.0 / exp(depth * fogParams.x * depth * fogParams.x), 0.0, 1.0);
}
fn SG_ApplyFog(factor : f32, fogColour : vec4<f32>, colour : ptr<function, vec4<f32>>) {
	*colour = vec4<f32>(mix(fogColour.rgb, (*colour).rgb, vec3<f32>(factor)), (*colour).a);
}
`,

	"lib_alpha_test": `fn SG_AlphaTest(threshold : f32, colour : vec4<f32>) {
	if (colour.a < threshold) {
		discard;
	}
}
`,

	"lib_skinning": `fn SG_SkinPosition(position : vec4<f32>, weights : vec4<f32>, indices : vec4<i32>, bones : ptr<uniform, array<mat3x4<f32>, SG_BONE_COUNT>>, skinned : ptr<function, vec4<f32>>) {
	var p = vec3<f32>(0.0);
	p += (position * (*bones)[indices.x]) * weights.x;
	p += (position * (*bones)[indices.y]) * weights.y;
	p += (position * (*bones)[indices.z]) * weights.z;
	p += (position * (*bones)[indices.w]) * weights.w;
	*skinned = vec4<f32>(p, 1.0);
}
fn SG_SkinNormal(normal : vec3<f32>, weights : vec4<f32>, indices : vec4<i32>, bones : ptr<uniform, array<mat3x4<f32>, SG_BONE_COUNT>>, skinned : ptr<function, vec3<f32>>) {
	var n = vec3<f32>(0.0);
	n += (vec4<f32>(normal, 0.0) * (*bones)[indices.x]) * weights.x;
	n += (vec4<f32>(normal, 0.0) * (*bones)[indices.y]) * weights.y;
	n += (vec4<f32>(normal, 0.0) * (*bones)[indices.z]) * weights.z;
	n += (vec4<f32>(normal, 0.0) * (*bones)[indices.w]) * weights.w;
	*skinned = normalize(n);
}
`,
}
