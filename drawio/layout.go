package drawio

// AutoLayout positions every node and regenerates the parent/child links.
//
// Each subtree occupies a band along the breadth axis wide enough for its
// children packed ItemSpacing apart; a parent is centred over its band.
// Levels are LevelSpacing apart along the depth axis and every level is as
// deep as its deepest node. Trees are placed side by side, GroupSpacing apart.
func (t *TreeDiagram) AutoLayout() {
	l := &layout{
		tree:    t,
		breadth: make(map[*NodeObject]float64),
	}

	roots := t.Roots()
	for _, r := range roots {
		l.measureLevels(r, 0)
	}
	offsets := make([]float64, len(l.levelDepth))
	total := 0.0
	for i, d := range l.levelDepth {
		offsets[i] = total
		total += d
		if i < len(l.levelDepth)-1 {
			total += t.LevelSpacing
		}
	}
	l.levelOffset = offsets
	l.totalDepth = total

	start := t.Padding
	for _, r := range roots {
		l.place(r, start, 0)
		start += l.subtreeBreadth(r) + t.GroupSpacing
	}

	t.rebuildTreeLinks()
}

type layout struct {
	tree        *TreeDiagram
	breadth     map[*NodeObject]float64
	levelDepth  []float64
	levelOffset []float64
	totalDepth  float64
}

// size returns a node's extent along the breadth and depth axes.
func (l *layout) size(n *NodeObject) (breadth, depth float64) {
	g := n.Geometry
	if l.tree.Direction.vertical() {
		return g.Width, g.Height
	}
	return g.Height, g.Width
}

func (l *layout) measureLevels(n *NodeObject, level int) {
	if level == len(l.levelDepth) {
		l.levelDepth = append(l.levelDepth, 0)
	}
	if _, d := l.size(n); d > l.levelDepth[level] {
		l.levelDepth[level] = d
	}
	for _, c := range n.children {
		l.measureLevels(c, level+1)
	}
}

func (l *layout) subtreeBreadth(n *NodeObject) float64 {
	if b, ok := l.breadth[n]; ok {
		return b
	}
	own, _ := l.size(n)
	sum := l.childrenBreadth(n)
	if sum < own {
		sum = own
	}
	l.breadth[n] = sum
	return sum
}

func (l *layout) childrenBreadth(n *NodeObject) float64 {
	if len(n.children) == 0 {
		return 0
	}
	sum := l.tree.ItemSpacing * float64(len(n.children)-1)
	for _, c := range n.children {
		sum += l.subtreeBreadth(c)
	}
	return sum
}

func (l *layout) place(n *NodeObject, start float64, level int) {
	band := l.subtreeBreadth(n)
	own, depth := l.size(n)
	b := start + (band-own)/2

	var d float64
	switch l.tree.Direction {
	case Up, Left:
		d = l.tree.Padding + l.totalDepth - l.levelOffset[level] - depth
	default:
		d = l.tree.Padding + l.levelOffset[level]
	}

	if l.tree.Direction.vertical() {
		n.Geometry.X, n.Geometry.Y = b, d
	} else {
		n.Geometry.X, n.Geometry.Y = d, b
	}

	child := start + (band-l.childrenBreadth(n))/2
	for _, c := range n.children {
		l.place(c, child, level+1)
		child += l.subtreeBreadth(c) + l.tree.ItemSpacing
	}
}

func (t *TreeDiagram) rebuildTreeLinks() {
	t.Page.removeEdges(t.treeLinks)
	t.treeLinks = make(map[*Edge]bool)

	var walk func(n *NodeObject)
	walk = func(n *NodeObject) {
		for _, c := range n.children {
			e := t.Page.AddEdge(n.Object, c.Object, "")
			e.Style.Apply(t.LinkStyle.style())
			e.Style.Apply(t.anchors())
			e.Style.Apply(t.TreeLinkStyle)
			t.treeLinks[e] = true
			walk(c)
		}
	}
	for _, r := range t.Roots() {
		walk(r)
	}
}

// anchors pins tree links to the facing sides of parent and child.
func (t *TreeDiagram) anchors() string {
	switch t.Direction {
	case Up:
		return "exitX=0.5;exitY=0;entryX=0.5;entryY=1;"
	case Left:
		return "exitX=0;exitY=0.5;entryX=1;entryY=0.5;"
	case Right:
		return "exitX=1;exitY=0.5;entryX=0;entryY=0.5;"
	default:
		return "exitX=0.5;exitY=1;entryX=0.5;entryY=0;"
	}
}
