// Package models contains the data structures used by the analyzer.
package models

// Relationship types.
const (
	Inherits   = "inherits"
	Uses       = "uses"
	Implements = "implements"
)

type ClassInfo struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	Package      string   `json:"package"`
	FilePath     string   `json:"file_path"`
	RelativePath string   `json:"relative_path"`
	StartLine    int      `json:"start_line"`
	EndLine      int      `json:"end_line"`
	HasDocstring bool     `json:"has_docstring"`
	Docstring    string   `json:"docstring"`
	Fields       []string `json:"fields,omitempty"`
	BaseClasses  []string `json:"base_classes,omitempty"`
	DependsOn    []string `json:"depends_on"`
	Implements   []string `json:"implements,omitempty"`
	Constructor  string   `json:"constructor,omitempty"`
}

type Relationship struct {
	Source           string `json:"source"`
	Target           string `json:"target"`
	RelationshipType string `json:"relationship_type"`
	Label            string `json:"label,omitempty"`
	Declared         bool   `json:"declared,omitempty"`
}

type AnalysisResult struct {
	Package       string         `json:"package"`
	Classes       []ClassInfo    `json:"classes"`
	Relationships []Relationship `json:"relationships"`
}
