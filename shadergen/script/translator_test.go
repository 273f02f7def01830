package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/script"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/srs"
)

type recordedError struct {
	code    script.ErrorCode
	file    string
	line    int
	message string
}

type recordingCompiler struct {
	errors []recordedError
}

func (c *recordingCompiler) AddError(code script.ErrorCode, file string, line int, message string) {
	c.errors = append(c.errors, recordedError{code: code, file: file, line: line, message: message})
}

func newTranslator(t *testing.T) (script.Translator, *srs.Registry) {
	t.Helper()
	r := srs.NewRegistry()
	require.NoError(t, srs.RegisterBuiltins(r))
	return script.NewTranslator(r), r
}

func TestTranslatePassClaimsPropertiesAndPinsLights(t *testing.T) {
	tr, _ := newTranslator(t)
	rs := srs.NewRenderState()
	compiler := &recordingCompiler{}

	tr.TranslatePass(rs, []script.Property{
		{Name: "hardware_skinning", Values: []string{"24", "skin_normals"}, File: "ninja.material", Line: 12},
		{Name: "light_count", Values: []string{"2", "1", "0"}, File: "ninja.material", Line: 13},
	}, compiler)

	assert.Empty(t, compiler.errors)
	assert.Equal(t, 1, rs.Len())
	assert.NotNil(t, rs.SubRenderState(srs.TypeHardwareSkinning))
	assert.False(t, rs.LightCountAutoUpdate())
	assert.Equal(t, host.LightCounts{2, 1, 0}, rs.LightCounts())
}

func TestTranslatePassReplacesSameTypeAcrossBlocks(t *testing.T) {
	tr, _ := newTranslator(t)
	rs := srs.NewRenderState()

	tr.TranslatePass(rs, []script.Property{
		{Name: "hardware_skinning", Values: []string{"16"}},
	}, nil)
	first := rs.SubRenderState(srs.TypeHardwareSkinning)

	tr.TranslatePass(rs, []script.Property{
		{Name: "hardware_skinning", Values: []string{"32"}},
	}, nil)

	assert.Equal(t, 1, rs.Len(), "re-declared modules replace, never stack")
	assert.NotSame(t, first, rs.SubRenderState(srs.TypeHardwareSkinning))
}

func TestTranslatePassReportsUnclaimedProperty(t *testing.T) {
	tr, _ := newTranslator(t)
	rs := srs.NewRenderState()
	compiler := &recordingCompiler{}

	tr.TranslatePass(rs, []script.Property{
		{Name: "bogus_effect", Values: []string{"on"}, File: "broken.material", Line: 7},
	}, compiler)

	require.Len(t, compiler.errors, 1)
	e := compiler.errors[0]
	assert.Equal(t, script.ErrorInvalidParameters, e.code)
	assert.Equal(t, "broken.material", e.file)
	assert.Equal(t, 7, e.line)
	assert.Contains(t, e.message, "bogus_effect")
	assert.Equal(t, 0, rs.Len())
}

func TestTranslatePassMalformedLightCount(t *testing.T) {
	tr, _ := newTranslator(t)

	cases := []struct {
		name   string
		values []string
	}{
		{"too few values", []string{"2", "1"}},
		{"non-numeric", []string{"2", "one", "0"}},
		{"negative", []string{"2", "-1", "0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rs := srs.NewRenderState()
			compiler := &recordingCompiler{}
			tr.TranslatePass(rs, []script.Property{
				{Name: "light_count", Values: tc.values, File: "m.material", Line: 3},
			}, compiler)

			require.Len(t, compiler.errors, 1)
			assert.Equal(t, script.ErrorInvalidParameters, compiler.errors[0].code)
			assert.True(t, rs.LightCountAutoUpdate(), "malformed light_count leaves the vector untouched")
		})
	}
}

func TestTranslatePassNilCompilerTolerated(t *testing.T) {
	tr, _ := newTranslator(t)
	rs := srs.NewRenderState()

	assert.NotPanics(t, func() {
		tr.TranslatePass(rs, []script.Property{
			{Name: "bogus_effect"},
		}, nil)
	})
}

func TestTranslateTextureUnit(t *testing.T) {
	tr, _ := newTranslator(t)
	rs := srs.NewRenderState()
	compiler := &recordingCompiler{}
	unit := &host.MemoryTextureUnit{TexName: "diffuse_layer"}

	tr.TranslateTextureUnit(rs, unit, []script.Property{
		{Name: "bogus_layer_effect", File: "m.material", Line: 21},
	}, compiler)

	require.Len(t, compiler.errors, 1)
	assert.Contains(t, compiler.errors[0].message, "diffuse_layer")
}

func TestNewTranslatorRequiresRegistry(t *testing.T) {
	assert.Panics(t, func() { script.NewTranslator(nil) })
}
