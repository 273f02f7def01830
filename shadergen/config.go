package shadergen

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// Config is the file-backed configuration surface of the generator. Every
// field has a working default, so a partial TOML document only overrides what
// it names.
type Config struct {
	// TargetLanguage is the writer tag programs are emitted in.
	TargetLanguage string `toml:"target_language"`

	// VertexProfile and FragmentProfile are opaque host profile strings
	// forwarded to the program compiler.
	VertexProfile   string `toml:"vertex_profile"`
	FragmentProfile string `toml:"fragment_profile"`

	// ShaderCachePath is the directory generated source is persisted under.
	// Empty disables the disk cache.
	ShaderCachePath string `toml:"shader_cache_path"`

	// Compaction selects the interpolant packing policy: "low", "medium", or
	// "high".
	Compaction string `toml:"compaction"`

	// MaxInterpolantComponents caps the inter-stage interpolant footprint in
	// scalar components. Zero disables the check.
	MaxInterpolantComponents int `toml:"max_interpolant_components"`

	// CreateShaderOverProgrammablePass re-synthesizes passes that already
	// carry programs.
	CreateShaderOverProgrammablePass bool `toml:"create_shader_over_programmable_pass"`
}

// DefaultConfig returns the configuration the generator starts from: GLSL
// output, medium compaction, a 64-component interpolant budget, no disk
// cache.
//
// Returns:
//   - Config: the defaults
func DefaultConfig() Config {
	return Config{
		TargetLanguage:           "glsl",
		Compaction:               "medium",
		MaxInterpolantComponents: 64,
	}
}

// LoadConfig decodes a TOML configuration file over the defaults.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the decoded configuration
//   - error: a read or decode failure
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("shadergen: read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("shadergen: decode config: %w", err)
	}
	return cfg, nil
}

// compactionPolicy maps the config string to the linker policy.
func (c Config) compactionPolicy() (ir.CompactionPolicy, error) {
	switch c.Compaction {
	case "", "medium":
		return ir.CompactMedium, nil
	case "low":
		return ir.CompactLow, nil
	case "high":
		return ir.CompactHigh, nil
	default:
		return ir.CompactMedium, fmt.Errorf("shadergen: unknown compaction policy %q", c.Compaction)
	}
}
