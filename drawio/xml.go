package drawio

import (
	"encoding/xml"
	"fmt"
	"os"
)

// XMLFile mirrors the uncompressed mxfile document format.
type XMLFile struct {
	XMLName  xml.Name     `xml:"mxfile"`
	Host     string       `xml:"host,attr"`
	Modified string       `xml:"modified,attr,omitempty"`
	Agent    string       `xml:"agent,attr,omitempty"`
	Version  string       `xml:"version,attr"`
	Type     string       `xml:"type,attr"`
	Diagrams []XMLDiagram `xml:"diagram"`
}

type XMLDiagram struct {
	Name  string        `xml:"name,attr"`
	ID    string        `xml:"id,attr"`
	Model XMLGraphModel `xml:"mxGraphModel"`
}

type XMLGraphModel struct {
	Grid       int     `xml:"grid,attr"`
	GridSize   int     `xml:"gridSize,attr"`
	Guides     int     `xml:"guides,attr"`
	Tooltips   int     `xml:"tooltips,attr"`
	Connect    int     `xml:"connect,attr"`
	Arrows     int     `xml:"arrows,attr"`
	Fold       int     `xml:"fold,attr"`
	Page       int     `xml:"page,attr"`
	PageScale  int     `xml:"pageScale,attr"`
	PageWidth  int     `xml:"pageWidth,attr"`
	PageHeight int     `xml:"pageHeight,attr"`
	Math       int     `xml:"math,attr"`
	Shadow     int     `xml:"shadow,attr"`
	Root       XMLRoot `xml:"root"`
}

type XMLRoot struct {
	Cells []XMLCell `xml:"mxCell"`
}

type XMLCell struct {
	ID       string       `xml:"id,attr"`
	Value    string       `xml:"value,attr,omitempty"`
	Style    string       `xml:"style,attr,omitempty"`
	Vertex   string       `xml:"vertex,attr,omitempty"`
	Edge     string       `xml:"edge,attr,omitempty"`
	Parent   string       `xml:"parent,attr,omitempty"`
	Source   string       `xml:"source,attr,omitempty"`
	Target   string       `xml:"target,attr,omitempty"`
	Geometry *XMLGeometry `xml:"mxGeometry"`
}

type XMLGeometry struct {
	X        float64 `xml:"x,attr,omitempty"`
	Y        float64 `xml:"y,attr,omitempty"`
	Width    float64 `xml:"width,attr,omitempty"`
	Height   float64 `xml:"height,attr,omitempty"`
	Relative string  `xml:"relative,attr,omitempty"`
	As       string  `xml:"as,attr"`
}

// Read parses a .drawio file written uncompressed.
func Read(path string) (*XMLFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc XMLFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &doc, nil
}

// Summary counts the graph content of a document, ignoring layout.
type Summary struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
	// EdgeValues counts edges by label; tree links have an empty label.
	EdgeValues map[string]int `json:"edge_values"`
}

func (f *XMLFile) Summary() Summary {
	s := Summary{EdgeValues: make(map[string]int)}
	for _, d := range f.Diagrams {
		for _, c := range d.Model.Root.Cells {
			switch {
			case c.Vertex == "1":
				s.Nodes++
			case c.Edge == "1":
				s.Edges++
				s.EdgeValues[c.Value]++
			}
		}
	}
	return s
}
