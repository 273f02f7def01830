// Package script integrates the generator with the host's material-script
// parser. The host hands over the property children of each
// rtshader_system block; the translator resolves them against the sub render
// state factory registry and the built-in light_count property, reporting
// malformed or unclaimed properties back to the host's script compiler
// without aborting the parse.
package script

import (
	"fmt"
	"strconv"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/srs"
)

// ErrorCode classifies a script diagnostic in the host compiler's vocabulary.
type ErrorCode int

const (
	// ErrorInvalidParameters marks a property whose values are malformed or
	// which no factory claimed.
	ErrorInvalidParameters ErrorCode = iota

	// ErrorUnsupported marks a block nesting the translator does not handle.
	ErrorUnsupported
)

// Compiler is the error-reporting surface of the host's script compiler.
// Diagnostics carry the script file and line so host tooling can point at the
// offending property.
type Compiler interface {
	// AddError records one diagnostic against the script being parsed.
	//
	// Parameters:
	//   - code: the diagnostic class
	//   - file: the script file name
	//   - line: the 1-based line of the offending property
	//   - message: a human-readable description
	AddError(code ErrorCode, file string, line int, message string)
}

// Property is one property child of an rtshader_system block as delivered by
// the host parser: a name, its whitespace-split values, and its source
// position for diagnostics.
type Property struct {
	// Name is the property name token.
	Name string

	// Values are the property's value tokens.
	Values []string

	// File and Line locate the property in the parsed script.
	File string
	Line int
}

// translator is the implementation of the Translator interface.
type translator struct {
	factories *srs.Registry
}

// Translator turns rtshader_system block properties into sub render state
// instances on a pass's custom render state. One translator serves every
// script; it holds no per-parse state.
type Translator interface {
	// TranslatePass processes the properties of an rtshader_system block
	// nested in a pass. Claimed properties append (or replace, by type) a
	// module on the render state; light_count pins the light vector; anything
	// else is reported to the compiler and skipped.
	//
	// Parameters:
	//   - rs: the pass's custom render state, accumulated across blocks
	//   - properties: the block's property children in script order
	//   - compiler: the diagnostic sink; may be nil
	TranslatePass(rs *srs.RenderState, properties []Property, compiler Compiler)

	// TranslateTextureUnit processes the properties of an rtshader_system
	// block nested in a texture_unit. The unit's layer index is offered to
	// factories alongside each property so layer-scoped modules can bind to
	// the right sampler.
	//
	// Parameters:
	//   - rs: the owning pass's custom render state
	//   - unit: the texture unit the block is nested in
	//   - properties: the block's property children in script order
	//   - compiler: the diagnostic sink; may be nil
	TranslateTextureUnit(rs *srs.RenderState, unit host.TextureUnit, properties []Property, compiler Compiler)
}

var _ Translator = &translator{}

// NewTranslator creates a translator over a factory registry.
//
// Parameters:
//   - factories: the registry consulted for property fan-out; must not be nil
//
// Returns:
//   - Translator: the new translator
func NewTranslator(factories *srs.Registry) Translator {
	if factories == nil {
		panic("script: factory registry is required")
	}
	return &translator{factories: factories}
}

func (t *translator) TranslatePass(rs *srs.RenderState, properties []Property, compiler Compiler) {
	for _, p := range properties {
		if p.Name == "light_count" {
			t.translateLightCount(rs, p, compiler)
			continue
		}
		s, claimed := t.factories.CreateFromProperty(p.Name, p.Values)
		if !claimed {
			report(compiler, p, "unrecognized rtshader_system property %q", p.Name)
			continue
		}
		rs.AddSubRenderState(s)
	}
}

func (t *translator) TranslateTextureUnit(rs *srs.RenderState, unit host.TextureUnit, properties []Property, compiler Compiler) {
	for _, p := range properties {
		s, claimed := t.factories.CreateFromProperty(p.Name, p.Values)
		if !claimed {
			report(compiler, p, "unrecognized rtshader_system property %q in texture_unit %q", p.Name, unit.Name())
			continue
		}
		rs.AddSubRenderState(s)
	}
}

// translateLightCount parses the built-in light_count property: three
// non-negative integers (directional, point, spot). A successful parse pins
// the render state's light vector and disables auto-update.
func (t *translator) translateLightCount(rs *srs.RenderState, p Property, compiler Compiler) {
	if len(p.Values) != 3 {
		report(compiler, p, "light_count expects 3 values, got %d", len(p.Values))
		return
	}
	var counts host.LightCounts
	for i, v := range p.Values {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			report(compiler, p, "light_count value %q is not a non-negative integer", v)
			return
		}
		counts[i] = n
	}
	rs.SetLightCounts(counts)
}

// report forwards one INVALID_PARAMETERS diagnostic when a compiler is wired.
func report(compiler Compiler, p Property, format string, args ...any) {
	if compiler == nil {
		return
	}
	compiler.AddError(ErrorInvalidParameters, p.File, p.Line, fmt.Sprintf(format, args...))
}
