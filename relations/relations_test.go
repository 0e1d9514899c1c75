package relations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `# pet shop relationships

Dog extends Animal
PetShop uses Veterinarian : "employs"
# interfaces
Dog implements Pet
Owner uses io.Writer`

	rels, err := Parse("pets.rel", src)
	require.NoError(t, err)
	require.Len(t, rels, 4)

	assert.Equal(t, Relation{Source: "Dog", Kind: Extends, Target: "Animal", Pos: rels[0].Pos}, rels[0])
	assert.Equal(t, 3, rels[0].Pos.Line)

	assert.Equal(t, Uses, rels[1].Kind)
	assert.Equal(t, "employs", rels[1].Label)
	assert.Equal(t, `PetShop uses Veterinarian : "employs"`, rels[1].String())

	assert.Equal(t, Implements, rels[2].Kind)
	assert.Equal(t, "io.Writer", rels[3].Target)
}

func TestParseEmpty(t *testing.T) {
	rels, err := Parse("empty.rel", "\n# nothing here\n\n")
	require.NoError(t, err)
	assert.Empty(t, rels)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown kind", "Dog likes Cat"},
		{"missing target", "Dog extends\n"},
		{"two relations on one line", "A uses B C uses D"},
		{"unterminated label", `A uses B : "oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.rel", tt.src)
			assert.Error(t, err)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decl.rel")
	require.NoError(t, os.WriteFile(path, []byte("Cat extends Animal\n"), 0644))

	rels, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, path, rels[0].Pos.Filename)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.rel"))
	assert.Error(t, err)
}

func TestParsePetsExample(t *testing.T) {
	rels, err := ParseFile(filepath.Join("..", "example", "pets", "pets.rel"))
	require.NoError(t, err)
	require.Len(t, rels, 4)
	for _, r := range rels {
		assert.Equal(t, Uses, r.Kind)
		assert.NotEmpty(t, r.Label)
	}
	assert.Equal(t, "PetShop", rels[3].Source)
	assert.Equal(t, "employs", rels[3].Label)
}
