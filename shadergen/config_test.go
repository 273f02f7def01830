package shadergen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shadergen.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"target_language = \"wgsl\"\ncompaction = \"high\"\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "wgsl", cfg.TargetLanguage)
	assert.Equal(t, 64, cfg.MaxInterpolantComponents, "unnamed fields keep their defaults")

	policy, err := cfg.compactionPolicy()
	require.NoError(t, err)
	assert.Equal(t, ir.CompactHigh, policy)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig().TargetLanguage, cfg.TargetLanguage, "defaults come back on failure")
}

func TestCompactionPolicyRejectsUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Compaction = "extreme"
	_, err := cfg.compactionPolicy()
	assert.Error(t, err)
}
