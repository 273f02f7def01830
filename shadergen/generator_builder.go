package shadergen

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// GeneratorOption configures a Generator at construction.
type GeneratorOption func(*Generator)

// WithTargetLanguage selects the writer tag programs are emitted in. The tag
// is validated against the writer registry when the generator is created.
//
// Parameters:
//   - tag: the language tag (e.g. "glsl", "hlsl", "wgsl", "null")
//
// Returns:
//   - GeneratorOption: the option
func WithTargetLanguage(tag string) GeneratorOption {
	return func(g *Generator) {
		g.targetLanguage = tag
	}
}

// WithProfiles sets the opaque host profile strings forwarded to the program
// compiler for each stage.
//
// Parameters:
//   - vertex: the vertex stage profile
//   - fragment: the fragment stage profile
//
// Returns:
//   - GeneratorOption: the option
func WithProfiles(vertex, fragment string) GeneratorOption {
	return func(g *Generator) {
		g.vertexProfile = vertex
		g.fragmentProfile = fragment
	}
}

// WithShaderCachePath enables the disk source cache rooted at dir.
//
// Parameters:
//   - dir: the cache directory; empty disables
//
// Returns:
//   - GeneratorOption: the option
func WithShaderCachePath(dir string) GeneratorOption {
	return func(g *Generator) {
		g.cachePath = dir
	}
}

// WithCompaction selects the interpolant packing policy handed to the linker.
//
// Parameters:
//   - policy: the packing policy
//
// Returns:
//   - GeneratorOption: the option
func WithCompaction(policy ir.CompactionPolicy) GeneratorOption {
	return func(g *Generator) {
		g.compaction = policy
	}
}

// WithMaxInterpolantComponents caps the inter-stage interpolant footprint.
//
// Parameters:
//   - components: the scalar component budget; 0 disables the check
//
// Returns:
//   - GeneratorOption: the option
func WithMaxInterpolantComponents(components int) GeneratorOption {
	return func(g *Generator) {
		g.maxInterpolants = components
	}
}

// WithShaderOverProgrammablePass controls whether passes that already carry
// programs are re-synthesized.
//
// Parameters:
//   - enabled: true to re-synthesize programmable passes
//
// Returns:
//   - GeneratorOption: the option
func WithShaderOverProgrammablePass(enabled bool) GeneratorOption {
	return func(g *Generator) {
		g.overProgrammable = enabled
	}
}

// WithConfig applies a decoded configuration file. Individual options may
// follow it to override single fields.
//
// Parameters:
//   - cfg: the configuration to apply
//
// Returns:
//   - GeneratorOption: the option
func WithConfig(cfg Config) GeneratorOption {
	return func(g *Generator) {
		if cfg.TargetLanguage != "" {
			g.targetLanguage = cfg.TargetLanguage
		}
		g.vertexProfile = cfg.VertexProfile
		g.fragmentProfile = cfg.FragmentProfile
		g.cachePath = cfg.ShaderCachePath
		g.overProgrammable = cfg.CreateShaderOverProgrammablePass
		g.maxInterpolants = cfg.MaxInterpolantComponents
		if policy, err := cfg.compactionPolicy(); err == nil {
			g.compaction = policy
		}
	}
}
