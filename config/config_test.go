package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diagram.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
package: ./example/pets
output_dir: out
file_name: pet_classes_diagram.drawio
direction: left
link_style: curved
filter: 'kind == "struct"'
relations: pets.rel
show_implements: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	base := filepath.Dir(path)
	assert.Equal(t, "./example/pets", cfg.Package)
	assert.Equal(t, base, cfg.Dir)
	assert.Equal(t, filepath.Join(base, "out"), cfg.OutputDir)
	assert.Equal(t, "pet_classes_diagram.drawio", cfg.FileName)
	assert.Equal(t, "left", cfg.Direction)
	assert.Equal(t, "curved", cfg.LinkStyle)
	assert.Equal(t, `kind == "struct"`, cfg.Filter)
	assert.Equal(t, filepath.Join(base, "pets.rel"), cfg.Relations)
	assert.False(t, cfg.Implements())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "package: example.com/m/pkg\n"))
	require.NoError(t, err)
	assert.Equal(t, "down", cfg.Direction)
	assert.Equal(t, "orthogonal", cfg.LinkStyle)
	assert.True(t, cfg.Implements())
	assert.Empty(t, cfg.Relations)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "package: [unclosed\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing package", Config{Direction: "down", LinkStyle: "straight"}},
		{"bad direction", Config{Package: "p", Direction: "diagonal", LinkStyle: "straight"}},
		{"bad link style", Config{Package: "p", Direction: "up", LinkStyle: "wavy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cfg.Validate(), ErrInvalidConfig)
		})
	}

	ok := Default()
	ok.Package = "./..."
	assert.NoError(t, ok.Validate())
}

func TestLoadPetsExample(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "example", "pets", "diagram.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ".", cfg.Package)
	assert.Equal(t, filepath.Join("..", "example", "pets"), cfg.Dir)
	assert.Equal(t, filepath.Join("..", "example", "pets", "pets.rel"), cfg.Relations)
	assert.True(t, cfg.Implements())
}
