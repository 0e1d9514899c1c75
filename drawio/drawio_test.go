package drawio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyle(t *testing.T) {
	t.Run("parse keeps order and bare keys", func(t *testing.T) {
		s := ParseStyle("ellipse;whiteSpace=wrap;html=1;")
		assert.Equal(t, "ellipse;whiteSpace=wrap;html=1;", s.String())

		v, ok := s.Get("whiteSpace")
		assert.True(t, ok)
		assert.Equal(t, "wrap", v)
	})

	t.Run("apply overrides existing keys", func(t *testing.T) {
		s := ParseStyle("rounded=1;fillColor=#ffffff;")
		s.Apply("fillColor=#d5e8d4;strokeColor=#82b366;")
		assert.Equal(t, "rounded=1;fillColor=#d5e8d4;strokeColor=#82b366;", s.String())
	})

	t.Run("delete", func(t *testing.T) {
		s := ParseStyle("a=1;b=2;c=3;")
		s.Delete("b")
		s.Delete("missing")
		assert.Equal(t, "a=1;c=3;", s.String())
	})
}

func TestParseDirectionAndLinkStyle(t *testing.T) {
	for _, s := range []string{"up", "down", "left", "RIGHT"} {
		_, err := ParseDirection(s)
		assert.NoError(t, err, s)
	}
	d, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)

	for _, s := range []string{"orthogonal", "straight", "curved"} {
		_, err := ParseLinkStyle(s)
		assert.NoError(t, err, s)
	}
	_, err = ParseLinkStyle("zigzag")
	assert.ErrorIs(t, err, ErrInvalidLinkStyle)
}

func TestSetTreeParent(t *testing.T) {
	tree := NewTreeDiagram(Down, Orthogonal)
	a := tree.AddNode("A", "rounded rectangle")
	b := tree.AddNode("B", "rounded rectangle")
	c := tree.AddNode("C", "rounded rectangle")

	require.NoError(t, b.SetTreeParent(a))
	require.NoError(t, c.SetTreeParent(b))
	assert.ErrorIs(t, a.SetTreeParent(c), ErrTreeCycle)

	// re-parenting detaches from the old parent
	require.NoError(t, c.SetTreeParent(a))
	assert.Empty(t, b.TreeChildren())
	assert.Len(t, a.TreeChildren(), 2)
	assert.Equal(t, []*NodeObject{a}, tree.Roots())
}

func TestAutoLayoutDown(t *testing.T) {
	tree := NewTreeDiagram(Down, Orthogonal)
	root := tree.AddNode("root", "rounded rectangle")
	left := tree.AddNode("left", "rounded rectangle")
	right := tree.AddNode("right", "rounded rectangle")
	require.NoError(t, left.SetTreeParent(root))
	require.NoError(t, right.SetTreeParent(root))

	tree.AutoLayout()

	// children: 120 + 15 + 120 = 255 wide, starting at the padding
	assert.Equal(t, 10.0, left.Geometry.X)
	assert.Equal(t, 145.0, right.Geometry.X)
	assert.Equal(t, 77.5, root.Geometry.X)

	assert.Equal(t, 10.0, root.Geometry.Y)
	assert.Equal(t, 130.0, left.Geometry.Y)
	assert.Equal(t, left.Geometry.Y, right.Geometry.Y)

	require.Len(t, tree.Page.Edges(), 2)
	for _, e := range tree.Page.Edges() {
		assert.Equal(t, root.Object, e.Source)
		v, _ := e.Style.Get("edgeStyle")
		assert.Equal(t, "orthogonalEdgeStyle", v)
	}
}

func TestAutoLayoutDirections(t *testing.T) {
	build := func(d Direction) (*NodeObject, *NodeObject) {
		tree := NewTreeDiagram(d, Straight)
		parent := tree.AddNode("p", "rectangle")
		child := tree.AddNode("c", "rectangle")
		require.NoError(t, child.SetTreeParent(parent))
		tree.AutoLayout()
		return parent, child
	}

	p, c := build(Up)
	assert.Greater(t, p.Geometry.Y, c.Geometry.Y)

	p, c = build(Right)
	assert.Less(t, p.Geometry.X, c.Geometry.X)
	assert.Equal(t, p.Geometry.Y, c.Geometry.Y)

	p, c = build(Left)
	assert.Greater(t, p.Geometry.X, c.Geometry.X)
}

func TestNewTreeDiagramNormalizesSettings(t *testing.T) {
	tree := NewTreeDiagram("DOWN", "Curved")
	assert.Equal(t, Down, tree.Direction)
	assert.Equal(t, Curved, tree.LinkStyle)

	parent := tree.AddNode("p", "rectangle")
	child := tree.AddNode("c", "rectangle")
	require.NoError(t, child.SetTreeParent(parent))
	tree.AutoLayout()
	assert.Less(t, parent.Geometry.Y, child.Geometry.Y)
	assert.Equal(t, parent.Geometry.X, child.Geometry.X)
	require.Len(t, tree.Page.Edges(), 1)
	curved, _ := tree.Page.Edges()[0].Style.Get("curved")
	assert.Equal(t, "1", curved)

	tree = NewTreeDiagram("sideways", "zigzag")
	assert.Equal(t, Down, tree.Direction)
	assert.Equal(t, Orthogonal, tree.LinkStyle)
}

func TestAutoLayoutIsRepeatable(t *testing.T) {
	tree := NewTreeDiagram(Down, Curved)
	a := tree.AddNode("A", "rounded rectangle")
	b := tree.AddNode("B", "rounded rectangle")
	require.NoError(t, b.SetTreeParent(a))
	tree.AddLink(b, a, "uses", "endArrow=open;dashed=1;")

	tree.AutoLayout()
	tree.AutoLayout()

	// one tree link plus the auxiliary link
	assert.Len(t, tree.Page.Edges(), 2)
}

func TestWriteAndRead(t *testing.T) {
	tree := NewTreeDiagram(Down, Orthogonal)
	a := tree.AddNode("Animal", "rounded rectangle")
	d := tree.AddNode("Dog", "rounded rectangle")
	o := tree.AddNode("Owner & co", "rounded rectangle")
	require.NoError(t, d.SetTreeParent(a))
	tree.AddLink(o, a, "uses", "endArrow=open;dashed=1;")
	tree.AutoLayout()

	dir := filepath.Join(t.TempDir(), "nested")
	path, err := tree.Write(dir, "out.drawio")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.drawio"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
	assert.Contains(t, string(data), "<mxfile")
	assert.Contains(t, string(data), "Owner &amp; co")

	doc, err := Read(path)
	require.NoError(t, err)
	require.Len(t, doc.Diagrams, 1)
	assert.Equal(t, tree.Page.ID, doc.Diagrams[0].ID)

	s := doc.Summary()
	assert.Equal(t, 3, s.Nodes)
	assert.Equal(t, 2, s.Edges)
	assert.Equal(t, 1, s.EdgeValues["uses"])
	assert.Equal(t, 1, s.EdgeValues[""])
}

func TestEncodeRootCells(t *testing.T) {
	f := NewFile()
	p := f.AddPage("")
	assert.Equal(t, "Page-1", p.Name)
	p.AddObject("solo", "ellipse")

	var buf bytes.Buffer
	require.NoError(t, f.Encode(&buf))
	out := buf.String()
	assert.Contains(t, out, `<mxCell id="0"></mxCell>`)
	assert.Contains(t, out, `<mxCell id="1" parent="0"></mxCell>`)
	assert.Contains(t, out, `style="ellipse;whiteSpace=wrap;html=1;"`)
}
