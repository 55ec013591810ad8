package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "mathlang.toml")

	err := os.WriteFile(file, []byte(`
[REPL]
Prompt = "> "
Debug = true

[Compile]
Target = "rust"
`), 0o644)
	require.NoError(t, err)

	cfg := Default()

	err = Load(file, &cfg)
	require.NoError(t, err)

	assert.Equal(t, "> ", cfg.REPL.Prompt)
	assert.True(t, cfg.REPL.Debug)
	assert.Equal(t, "", cfg.REPL.History)
	assert.Equal(t, "rust", cfg.Compile.Target)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()

	err := Load(filepath.Join(dir, "missing.toml"), &cfg)
	assert.Error(t, err)

	file := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(file, []byte("[REPL]\nColor = true\n"), 0o644))

	err = Load(file, &cfg)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Color")
		assert.Contains(t, err.Error(), "is not defined in")
		assert.Contains(t, err.Error(), file)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.REPL.History = "/tmp/history"

	data, err := Marshal(&cfg)
	require.NoError(t, err)

	assert.Contains(t, string(data), "[REPL]")
	assert.Contains(t, string(data), "Target")

	file := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(file, data, 0o644))

	var back Config

	require.NoError(t, Load(file, &back))
	assert.Equal(t, cfg, back)
}
