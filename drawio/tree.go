package drawio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidLinkStyle = errors.New("invalid link style")
	ErrTreeCycle        = errors.New("tree parent would create a cycle")
)

type Direction string

const (
	Down  Direction = "down"
	Up    Direction = "up"
	Left  Direction = "left"
	Right Direction = "right"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Down, Up, Left, Right:
		return d, nil
	case "":
		return Down, nil
	default:
		return "", fmt.Errorf("%w: %q (want up, down, left or right)", ErrInvalidDirection, s)
	}
}

func (d Direction) vertical() bool { return d == Down || d == Up }

type LinkStyle string

const (
	Orthogonal LinkStyle = "orthogonal"
	Straight   LinkStyle = "straight"
	Curved     LinkStyle = "curved"
)

func ParseLinkStyle(s string) (LinkStyle, error) {
	switch l := LinkStyle(strings.ToLower(strings.TrimSpace(s))); l {
	case Orthogonal, Straight, Curved:
		return l, nil
	case "":
		return Orthogonal, nil
	default:
		return "", fmt.Errorf("%w: %q (want orthogonal, straight or curved)", ErrInvalidLinkStyle, s)
	}
}

func (l LinkStyle) style() string {
	switch l {
	case Straight:
		return "edgeStyle=none;"
	case Curved:
		return "edgeStyle=orthogonalEdgeStyle;curved=1;"
	default:
		return "edgeStyle=orthogonalEdgeStyle;rounded=0;"
	}
}

// TreeDiagram is a single-page diagram whose nodes form a forest. Tree links
// between parents and children are generated by AutoLayout; any other edge
// is added with AddLink.
type TreeDiagram struct {
	File      *File
	Page      *Page
	Direction Direction
	LinkStyle LinkStyle

	// TreeLinkStyle is merged into every generated parent/child link.
	TreeLinkStyle string

	LevelSpacing float64
	ItemSpacing  float64
	GroupSpacing float64
	Padding      float64

	nodes     []*NodeObject
	treeLinks map[*Edge]bool
}

// NewTreeDiagram creates an empty tree diagram. Direction and link style are
// matched case-insensitively; unknown values fall back to Down and
// Orthogonal.
func NewTreeDiagram(direction Direction, linkStyle LinkStyle) *TreeDiagram {
	if d, err := ParseDirection(string(direction)); err == nil {
		direction = d
	} else {
		direction = Down
	}
	if l, err := ParseLinkStyle(string(linkStyle)); err == nil {
		linkStyle = l
	} else {
		linkStyle = Orthogonal
	}
	f := NewFile()
	return &TreeDiagram{
		File:         f,
		Page:         f.AddPage(""),
		Direction:    direction,
		LinkStyle:    linkStyle,
		LevelSpacing: 60,
		ItemSpacing:  15,
		GroupSpacing: 30,
		Padding:      10,
		treeLinks:    make(map[*Edge]bool),
	}
}

// NodeObject is an object that takes part in the tree layout.
type NodeObject struct {
	*Object
	parent   *NodeObject
	children []*NodeObject
}

func (t *TreeDiagram) AddNode(value, baseStyle string) *NodeObject {
	n := &NodeObject{Object: t.Page.AddObject(value, baseStyle)}
	t.nodes = append(t.nodes, n)
	return n
}

func (t *TreeDiagram) Nodes() []*NodeObject { return t.nodes }

// AddLink adds an auxiliary edge that does not affect the layout.
func (t *TreeDiagram) AddLink(source, target *NodeObject, value, style string) *Edge {
	e := t.Page.AddEdge(source.Object, target.Object, value)
	e.Style.Apply(style)
	return e
}

func (n *NodeObject) TreeParent() *NodeObject { return n.parent }

func (n *NodeObject) TreeChildren() []*NodeObject { return n.children }

// SetTreeParent moves n under parent, replacing any previous parent. A nil
// parent makes n a root.
func (n *NodeObject) SetTreeParent(parent *NodeObject) error {
	for p := parent; p != nil; p = p.parent {
		if p == n {
			return ErrTreeCycle
		}
	}
	if n.parent != nil {
		siblings := n.parent.children
		for i, c := range siblings {
			if c == n {
				n.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	n.parent = parent
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return nil
}

// Roots returns the nodes without a tree parent, in insertion order.
func (t *TreeDiagram) Roots() []*NodeObject {
	var roots []*NodeObject
	for _, n := range t.nodes {
		if n.parent == nil {
			roots = append(roots, n)
		}
	}
	return roots
}

// Write lays nothing out; call AutoLayout first.
func (t *TreeDiagram) Write(dir, name string) (string, error) {
	return t.File.Write(dir, name)
}
