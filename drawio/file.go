// Package drawio builds draw.io diagrams in memory, lays out tree diagrams
// and writes them as uncompressed .drawio (mxfile) documents.
package drawio

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	defaultWidth  = 120
	defaultHeight = 60

	fileHost    = "codewiki-go-diagram"
	fileVersion = "24.7.17"
)

type Geometry struct {
	X, Y          float64
	Width, Height float64
}

// Object is a vertex on a page.
type Object struct {
	ID       string
	Value    string
	Style    *Style
	Geometry Geometry
}

// Edge connects two objects on the same page.
type Edge struct {
	ID     string
	Value  string
	Style  *Style
	Source *Object
	Target *Object
}

type Page struct {
	ID   string
	Name string

	objects []*Object
	edges   []*Edge
	nextID  int
}

func newPage(name string) *Page {
	// ids 0 and 1 are the root cell and the default layer
	return &Page{ID: uuid.New().String(), Name: name, nextID: 2}
}

func (p *Page) newID() string {
	id := strconv.Itoa(p.nextID)
	p.nextID++
	return id
}

// AddObject creates a vertex. baseStyle is either a named base style
// ("rounded rectangle") or a literal style string.
func (p *Page) AddObject(value, baseStyle string) *Object {
	style, ok := BaseStyle(baseStyle)
	if !ok {
		style = baseStyle
	}
	obj := &Object{
		ID:       p.newID(),
		Value:    value,
		Style:    ParseStyle(style),
		Geometry: Geometry{Width: defaultWidth, Height: defaultHeight},
	}
	p.objects = append(p.objects, obj)
	return obj
}

func (p *Page) AddEdge(source, target *Object, value string) *Edge {
	e := &Edge{
		ID:     p.newID(),
		Value:  value,
		Style:  ParseStyle("html=1;"),
		Source: source,
		Target: target,
	}
	p.edges = append(p.edges, e)
	return e
}

func (p *Page) removeEdges(drop map[*Edge]bool) {
	kept := p.edges[:0]
	for _, e := range p.edges {
		if !drop[e] {
			kept = append(kept, e)
		}
	}
	p.edges = kept
}

func (p *Page) Objects() []*Object { return p.objects }

func (p *Page) Edges() []*Edge { return p.edges }

// File is a draw.io document made of one or more pages.
type File struct {
	Pages []*Page
}

func NewFile() *File {
	return &File{}
}

func (f *File) AddPage(name string) *Page {
	if name == "" {
		name = fmt.Sprintf("Page-%d", len(f.Pages)+1)
	}
	p := newPage(name)
	f.Pages = append(f.Pages, p)
	return p
}

// Encode writes the document as indented mxfile XML.
func (f *File) Encode(w io.Writer) error {
	doc := XMLFile{
		Host:     fileHost,
		Modified: time.Now().UTC().Format(time.RFC3339),
		Agent:    fileHost,
		Version:  fileVersion,
		Type:     "device",
	}
	for _, p := range f.Pages {
		doc.Diagrams = append(doc.Diagrams, p.toXML())
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Write creates dir if needed and writes the document to dir/name.
func (f *File) Write(dir, name string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := f.Encode(out); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func (p *Page) toXML() XMLDiagram {
	cells := []XMLCell{
		{ID: "0"},
		{ID: "1", Parent: "0"},
	}
	for _, o := range p.objects {
		cells = append(cells, XMLCell{
			ID:     o.ID,
			Value:  o.Value,
			Style:  o.Style.String(),
			Vertex: "1",
			Parent: "1",
			Geometry: &XMLGeometry{
				X:      o.Geometry.X,
				Y:      o.Geometry.Y,
				Width:  o.Geometry.Width,
				Height: o.Geometry.Height,
				As:     "geometry",
			},
		})
	}
	for _, e := range p.edges {
		cell := XMLCell{
			ID:       e.ID,
			Value:    e.Value,
			Style:    e.Style.String(),
			Edge:     "1",
			Parent:   "1",
			Geometry: &XMLGeometry{Relative: "1", As: "geometry"},
		}
		if e.Source != nil {
			cell.Source = e.Source.ID
		}
		if e.Target != nil {
			cell.Target = e.Target.ID
		}
		cells = append(cells, cell)
	}

	return XMLDiagram{
		Name: p.Name,
		ID:   p.ID,
		Model: XMLGraphModel{
			Grid:       1,
			GridSize:   10,
			Guides:     1,
			Tooltips:   1,
			Connect:    1,
			Arrows:     1,
			Fold:       1,
			Page:       1,
			PageScale:  1,
			PageWidth:  850,
			PageHeight: 1100,
			Root:       XMLRoot{Cells: cells},
		},
	}
}
