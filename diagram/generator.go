// Package diagram turns the classes of a Go package into a draw.io tree
// diagram: embedded types become the tree, "uses" and "implements"
// relationships become separately styled edges.
package diagram

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/don7panic/codewiki-go-diagram/analyzer"
	"github.com/don7panic/codewiki-go-diagram/drawio"
	"github.com/don7panic/codewiki-go-diagram/relations"
)

const tracerName = "github.com/don7panic/codewiki-go-diagram/diagram"

// Edge styles. Tree links run from base to embedding type, so the hollow
// triangle sits at the base end.
const (
	NodeStyle       = "rounded rectangle"
	InterfaceStyle  = "fontStyle=2;"
	TreeLinkStyle   = "endArrow=none;startArrow=block;startFill=0;"
	ExtendsStyle    = "endArrow=block;endFill=0;"
	UsesStyle       = "endArrow=open;dashed=1;"
	ImplementsStyle = "endArrow=block;endFill=0;dashed=1;dashPattern=1 2;"
)

// Stats counts what the last generated diagram contains.
type Stats struct {
	Nodes      int `json:"nodes"`
	TreeLinks  int `json:"tree_links"`
	Extends    int `json:"extends"`
	Uses       int `json:"uses"`
	Implements int `json:"implements"`
}

// Generator analyzes a package and writes its class diagram. The
// relationship maps hold the state of the last call and are rebuilt on every
// call.
type Generator struct {
	OutputDir string

	PackagePath string
	AllClasses  map[string]bool
	Inheritance map[string][]string
	Composition map[string][]string
	Implements  map[string][]string

	kinds  map[string]string
	labels map[string]string
	stats  Stats

	logger         *slog.Logger
	tracer         trace.Tracer
	filter         string
	declared       []relations.Relation
	showImplements bool
}

func NewGenerator(outputDir string, opts ...Option) *Generator {
	if outputDir == "" {
		outputDir = "."
	}
	g := &Generator{
		OutputDir:      outputDir,
		logger:         slog.Default(),
		tracer:         otel.Tracer(tracerName),
		showImplements: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Stats returns the counts of the last generated diagram.
func (g *Generator) Stats() Stats { return g.stats }

// GenerateDiagram analyzes the package matched by pattern (resolved from dir)
// and writes its diagram to OutputDir. Direction and link style are
// validated and normalized first. An empty fileName defaults to
// "<package>_diagram.drawio". It returns the path of the written file.
func (g *Generator) GenerateDiagram(ctx context.Context, dir, pattern, fileName string, direction drawio.Direction, linkStyle drawio.LinkStyle) (_ string, err error) {
	ctx, span := g.tracer.Start(ctx, "diagram.GenerateDiagram", trace.WithAttributes(
		attribute.String("diagram.pattern", pattern),
		attribute.String("diagram.direction", string(direction)),
		attribute.String("diagram.link_style", string(linkStyle)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if direction, err = drawio.ParseDirection(string(direction)); err != nil {
		return "", err
	}
	if linkStyle, err = drawio.ParseLinkStyle(string(linkStyle)); err != nil {
		return "", err
	}

	if err := g.analyzeModule(ctx, dir, pattern); err != nil {
		return "", err
	}
	if fileName == "" {
		fileName = path.Base(g.PackagePath) + "_diagram.drawio"
	}

	tree := g.buildTree(ctx, direction, linkStyle)

	_, writeSpan := g.tracer.Start(ctx, "diagram.Write")
	out, err := tree.Write(g.OutputDir, fileName)
	if err != nil {
		writeSpan.RecordError(err)
		writeSpan.SetStatus(codes.Error, err.Error())
		writeSpan.End()
		return "", err
	}
	writeSpan.End()

	span.SetAttributes(attribute.Int("diagram.nodes", g.stats.Nodes))
	g.logger.Info("diagram written",
		"component", "diagram",
		"path", out,
		"package", g.PackagePath,
		"nodes", g.stats.Nodes,
		"uses", g.stats.Uses,
		"implements", g.stats.Implements)
	return out, nil
}

// analyzeModule resets the generator state, analyzes the package and applies
// the class filter and declared relationships.
func (g *Generator) analyzeModule(ctx context.Context, dir, pattern string) error {
	ctx, span := g.tracer.Start(ctx, "diagram.Analyze")
	defer span.End()

	g.PackagePath = ""
	g.AllClasses = make(map[string]bool)
	g.Inheritance = make(map[string][]string)
	g.Composition = make(map[string][]string)
	g.Implements = make(map[string][]string)
	g.kinds = make(map[string]string)
	g.labels = make(map[string]string)
	g.stats = Stats{}

	an, err := analyzer.NewGoAnalyzer(dir)
	if err != nil {
		return err
	}
	an.SetLogger(g.logger)
	if err := an.Analyze(ctx, pattern); err != nil {
		return err
	}
	g.PackagePath = an.PackagePath

	var filter *classFilter
	if g.filter != "" {
		if filter, err = compileFilter(g.filter); err != nil {
			return err
		}
	}

	for _, name := range an.ClassNames() {
		info := an.Nodes[name]
		if filter != nil {
			keep, err := filter.match(info)
			if err != nil {
				return err
			}
			if !keep {
				g.logger.Debug("class filtered out", "component", "diagram", "class", name)
				continue
			}
		}
		g.AllClasses[name] = true
		g.kinds[name] = info.Kind
	}
	for name := range g.AllClasses {
		if bases := an.Inheritance[name]; len(bases) > 0 {
			g.Inheritance[name] = slices.Clone(bases)
		}
		g.Composition[name] = an.Dependencies(name)
		if ifaces := an.Implements[name]; len(ifaces) > 0 {
			g.Implements[name] = slices.Clone(ifaces)
		}
	}

	g.mergeDeclared()
	span.SetAttributes(attribute.Int("diagram.classes", len(g.AllClasses)))
	return nil
}

func (g *Generator) mergeDeclared() {
	for _, r := range g.declared {
		if !g.AllClasses[r.Source] || !g.AllClasses[r.Target] {
			g.logger.Warn("declared relationship skipped: class not in diagram",
				"component", "diagram", "relation", r.String(), "position", r.Pos.String())
			continue
		}
		switch r.Kind {
		case relations.Extends:
			g.Inheritance[r.Source] = appendUnique(g.Inheritance[r.Source], r.Target)
			g.Composition[r.Source] = slices.DeleteFunc(g.Composition[r.Source], func(s string) bool {
				return s == r.Target
			})
		case relations.Uses:
			if !slices.Contains(g.Inheritance[r.Source], r.Target) {
				g.Composition[r.Source] = appendUnique(g.Composition[r.Source], r.Target)
				if r.Label != "" {
					g.labels[r.Source+"->"+r.Target] = r.Label
				}
			}
		case relations.Implements:
			g.Implements[r.Source] = appendUnique(g.Implements[r.Source], r.Target)
		}
	}
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

func (g *Generator) buildTree(ctx context.Context, direction drawio.Direction, linkStyle drawio.LinkStyle) *drawio.TreeDiagram {
	_, span := g.tracer.Start(ctx, "diagram.Layout")
	defer span.End()

	tree := drawio.NewTreeDiagram(direction, linkStyle)
	tree.TreeLinkStyle = TreeLinkStyle

	names := sortedKeys(g.AllClasses)
	nodes := make(map[string]*drawio.NodeObject, len(names))
	for _, name := range names {
		n := tree.AddNode(name, NodeStyle)
		if g.kinds[name] == "interface" {
			n.Style.Apply(InterfaceStyle)
		}
		nodes[name] = n
	}

	// The first base in the diagram becomes the tree parent, the rest are
	// drawn as extra edges.
	for _, child := range names {
		parented := false
		for _, parent := range g.Inheritance[child] {
			p, ok := nodes[parent]
			if !ok {
				continue
			}
			if !parented && nodes[child].SetTreeParent(p) == nil {
				parented = true
				g.stats.TreeLinks++
				continue
			}
			tree.AddLink(nodes[child], p, "", ExtendsStyle)
			g.stats.Extends++
		}
	}

	for _, name := range names {
		for _, dep := range g.Composition[name] {
			target, ok := nodes[dep]
			if !ok {
				continue
			}
			label, ok := g.labels[name+"->"+dep]
			if !ok {
				label = "uses"
			}
			tree.AddLink(nodes[name], target, label, UsesStyle)
			g.stats.Uses++
		}
	}

	if g.showImplements {
		for _, name := range names {
			for _, iface := range g.Implements[name] {
				if target, ok := nodes[iface]; ok {
					tree.AddLink(nodes[name], target, "implements", ImplementsStyle)
					g.stats.Implements++
				}
			}
		}
	}

	tree.AutoLayout()
	g.stats.Nodes = len(nodes)
	return tree
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Options are the parameters of GenerateClassDiagram.
type Options struct {
	// Dir is the directory the package pattern is resolved from.
	Dir       string
	OutputDir string
	FileName  string
	Direction drawio.Direction
	LinkStyle drawio.LinkStyle

	Filter         string
	Declared       []relations.Relation
	HideImplements bool
	Logger         *slog.Logger
}

// GenerateClassDiagram is a convenience wrapper that generates the class
// diagram of one package and returns the path of the written file.
func GenerateClassDiagram(ctx context.Context, pattern string, opts Options) (string, error) {
	var err error
	if opts.Direction, err = drawio.ParseDirection(string(opts.Direction)); err != nil {
		return "", err
	}
	if opts.LinkStyle, err = drawio.ParseLinkStyle(string(opts.LinkStyle)); err != nil {
		return "", err
	}

	g := NewGenerator(opts.OutputDir,
		WithLogger(opts.Logger),
		WithFilter(opts.Filter),
		WithDeclared(opts.Declared),
		WithImplements(!opts.HideImplements),
	)
	out, err := g.GenerateDiagram(ctx, opts.Dir, pattern, opts.FileName, opts.Direction, opts.LinkStyle)
	if err != nil {
		return "", fmt.Errorf("generate diagram for %s: %w", pattern, err)
	}
	return out, nil
}
