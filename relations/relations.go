// Package relations parses explicitly declared relationships between
// classes. Declared relationships are exact, unlike the ones inferred from
// source text, and are merged into a generated diagram.
//
// The format is one relationship per line:
//
//	# comment
//	Dog extends Animal
//	PetShop uses Veterinarian : "employs"
//	Dog implements Pet
package relations

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Kind is the type of a declared relationship.
type Kind string

const (
	Extends    Kind = "extends"
	Uses       Kind = "uses"
	Implements Kind = "implements"
)

// Relation is a single declared relationship.
type Relation struct {
	Source string
	Kind   Kind
	Target string
	Label  string
	Pos    lexer.Position
}

func (r Relation) String() string {
	if r.Label != "" {
		return fmt.Sprintf("%s %s %s : %q", r.Source, r.Kind, r.Target, r.Label)
	}
	return fmt.Sprintf("%s %s %s", r.Source, r.Kind, r.Target)
}

var relationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

type document struct {
	Entries []*entry `Newline* ( @@ ( Newline+ | EOF ) )*`
}

type entry struct {
	Pos    lexer.Position
	Source string  `@Ident`
	Kind   string  `@( "extends" | "uses" | "implements" )`
	Target string  `@Ident`
	Label  *string `( Colon @String )?`
}

var parser = participle.MustBuild[document](
	participle.Lexer(relationLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
)

// Parse reads declared relationships from src. filename is only used in
// error positions.
func Parse(filename, src string) ([]Relation, error) {
	doc, err := parser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}

	out := make([]Relation, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		r := Relation{
			Source: e.Source,
			Kind:   Kind(e.Kind),
			Target: e.Target,
			Pos:    e.Pos,
		}
		if e.Label != nil {
			r.Label = *e.Label
		}
		out = append(out, r)
	}
	return out, nil
}

func ParseFile(path string) ([]Relation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(data))
}
