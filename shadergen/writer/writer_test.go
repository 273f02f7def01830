package writer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/writer"
)

// texturedSet builds a linked vertex/pixel pair: transformed position, one
// passed-through texture coordinate, and a sampled colour output.
func texturedSet(t *testing.T) *ir.ProgramSet {
	t.Helper()
	ps := ir.NewProgramSet()

	vs := ps.VertexMain()
	inPos, err := vs.ResolveInput(ir.SemanticPosition, 0, ir.TypeFloat4)
	require.NoError(t, err)
	outPos, err := vs.ResolveOutput(ir.SemanticPosition, 0, ir.TypeFloat4)
	require.NoError(t, err)
	wvp, err := ps.Vertex().ResolveAutoUniform(ir.AutoWorldViewProjMatrix, 0, ir.TypeMatrix4, 0)
	require.NoError(t, err)
	vs.AddAtom(ir.NewBinaryOp(100, ir.OpMultiply, ir.Out(outPos), ir.In(wvp), ir.In(inPos)))

	inUV, err := vs.ResolveInput(ir.SemanticTexCoord, 0, ir.TypeFloat2)
	require.NoError(t, err)
	outUV, err := vs.ResolveOutput(ir.SemanticTexCoord, 0, ir.TypeFloat2)
	require.NoError(t, err)
	vs.AddAtom(ir.NewAssignment(400, ir.Out(outUV), ir.In(inUV)))

	fs := ps.PixelMain()
	fUV, err := fs.ResolveInput(ir.SemanticTexCoord, 0, ir.TypeFloat2)
	require.NoError(t, err)
	fOut, err := fs.ResolveOutput(ir.SemanticColour, 0, ir.TypeFloat4)
	require.NoError(t, err)
	sampler, err := ps.Pixel().ResolveSampler("uDiffuseMap", ir.TypeSampler2D)
	require.NoError(t, err)
	ps.Pixel().AddDependency("lib_texturing")
	fs.AddAtom(ir.NewInvocation("SG_SampleTexture2D", 400, ir.In(sampler), ir.In(fUV), ir.Out(fOut)))

	require.NoError(t, ps.Link(ir.CompactMedium, 64))
	return ps
}

func write(t *testing.T, tag string, p ir.Program) string {
	t.Helper()
	w, err := writer.NewRegistry().ForLanguage(tag)
	require.NoError(t, err)
	source, err := w.Write(p)
	require.NoError(t, err)
	return source
}

func TestRegistryLanguages(t *testing.T) {
	r := writer.NewRegistry()
	assert.Equal(t, []string{"glsl", "glslang", "glsles", "hlsl", "null", "wgsl"}, r.Languages())

	_, err := r.ForLanguage("cg")
	assert.ErrorIs(t, err, writer.ErrUnsupportedLanguage)
}

func TestGLSLVertexOutput(t *testing.T) {
	ps := texturedSet(t)
	source := write(t, "glsl", ps.Vertex())

	assert.True(t, strings.HasPrefix(source, "#version 330 core\n"))
	assert.Contains(t, source, "uniform mat4 uWorldviewprojMatrix;")
	assert.Contains(t, source, "gl_Position = uWorldviewprojMatrix * iPosition;")
	assert.Contains(t, source, "out vec2 vTexcoord0;")
	assert.NotContains(t, source, "out vec4 vPosition", "clip-space position maps to the builtin")
}

func TestGLSLPixelOutput(t *testing.T) {
	ps := texturedSet(t)
	source := write(t, "glsl", ps.Pixel())

	assert.Contains(t, source, "uniform sampler2D uDiffuseMap;")
	assert.Contains(t, source, "in vec2 vTexcoord0;")
	assert.Contains(t, source, "SG_SampleTexture2D(uDiffuseMap, vTexcoord0, oColour);")
	assert.Contains(t, source, "void SG_SampleTexture2D", "referenced library bodies are inlined")
}

func TestGLSLESHeader(t *testing.T) {
	source := write(t, "glsles", texturedSet(t).Pixel())
	assert.True(t, strings.HasPrefix(source, "#version 300 es\n"))
	assert.Contains(t, source, "precision highp float;")
}

func TestGlslangLayoutLocations(t *testing.T) {
	ps := texturedSet(t)
	vsrc := write(t, "glslang", ps.Vertex())
	psrc := write(t, "glslang", ps.Pixel())

	assert.True(t, strings.HasPrefix(vsrc, "#version 450\n"))
	// Texture coordinate interpolants occupy the 8+n location band in both
	// stages so a pixel stage consuming a subset still lines up.
	assert.Contains(t, vsrc, "layout(location = 8) out vec2 vTexcoord0;")
	assert.Contains(t, psrc, "layout(location = 8) in vec2 vTexcoord0;")
}

func TestHLSLOutput(t *testing.T) {
	ps := texturedSet(t)
	vsrc := write(t, "hlsl", ps.Vertex())
	psrc := write(t, "hlsl", ps.Pixel())

	assert.Contains(t, vsrc, "cbuffer SGParams : register(b0)")
	assert.Contains(t, vsrc, "mul(uWorldviewprojMatrix, input.iPosition)", "matrix products use mul")
	assert.Contains(t, vsrc, ": SV_POSITION;")
	assert.Contains(t, vsrc, "struct VS_OUTPUT")

	assert.Contains(t, psrc, "Texture2D uDiffuseMapTex : register(t0);")
	assert.Contains(t, psrc, "SamplerState uDiffuseMapSmp : register(s0);")
	assert.Contains(t, psrc, ": SV_TARGET")
	assert.Contains(t, psrc, "uDiffuseMapTex, uDiffuseMapSmp")
}

func TestWGSLOutput(t *testing.T) {
	ps := texturedSet(t)
	vsrc := write(t, "wgsl", ps.Vertex())
	psrc := write(t, "wgsl", ps.Pixel())

	assert.Contains(t, vsrc, "@vertex")
	assert.Contains(t, vsrc, "var<uniform> uWorldviewprojMatrix : mat4x4<f32>;")
	assert.Contains(t, vsrc, "@builtin(position)")

	assert.Contains(t, psrc, "@fragment")
	assert.Contains(t, psrc, "@group(1) @binding(0) var uDiffuseMap_t : texture_2d<f32>;")
	assert.Contains(t, psrc, "@group(1) @binding(1) var uDiffuseMap_s : sampler;")
	assert.Contains(t, psrc, "uDiffuseMap_t, uDiffuseMap_s")
}

func TestNullWriterEmitsNothing(t *testing.T) {
	source := write(t, "null", texturedSet(t).Vertex())
	assert.Empty(t, source)
}

func TestBoneCountConstant(t *testing.T) {
	ps := ir.NewProgramSet()
	vs := ps.VertexMain()
	_, err := vs.ResolveOutput(ir.SemanticPosition, 0, ir.TypeFloat4)
	require.NoError(t, err)
	_, err = ps.Vertex().ResolveAutoUniform(ir.AutoBoneMatrixArray, 0, ir.TypeMatrix3x4, 24)
	require.NoError(t, err)
	require.NoError(t, ps.Link(ir.CompactLow, 0))

	assert.Contains(t, write(t, "glsl", ps.Vertex()), "#define SG_BONE_COUNT 24")
	assert.Contains(t, write(t, "hlsl", ps.Vertex()), "#define SG_BONE_COUNT 24")
	wsrc := write(t, "wgsl", ps.Vertex())
	assert.Contains(t, wsrc, "const SG_BONE_COUNT : u32 = 24u;")
	assert.Contains(t, wsrc, "array<mat3x4<f32>, SG_BONE_COUNT>")
}

type stubWriter struct{ tag string }

func (w *stubWriter) Language() string                 { return w.tag }
func (w *stubWriter) Write(ir.Program) (string, error) { return "// stub\n", nil }

func TestRegisterReplacesWriter(t *testing.T) {
	r := writer.NewRegistry()
	stub := &stubWriter{tag: "glsl"}
	r.Register(stub)

	w, err := r.ForLanguage("glsl")
	require.NoError(t, err)
	assert.Same(t, writer.Writer(stub), w)
	assert.Len(t, r.Languages(), 6, "replacement does not add a tag")
}
