package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/don7panic/codewiki-go-diagram/analyzer"
	"github.com/don7panic/codewiki-go-diagram/config"
	"github.com/don7panic/codewiki-go-diagram/diagram"
	"github.com/don7panic/codewiki-go-diagram/drawio"
	"github.com/don7panic/codewiki-go-diagram/relations"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML diagram configuration")
	pkg := flag.String("pkg", "", "Package to analyze (import path or ./relative directory)")
	dir := flag.String("dir", ".", "Directory the package is resolved from")
	outDir := flag.String("out", ".", "Directory where the diagram will be saved")
	fileName := flag.String("file", "", "Output file name (default <package>_diagram.drawio)")
	direction := flag.String("direction", "down", "Direction of the tree: up, down, left or right")
	linkStyle := flag.String("link-style", "orthogonal", "Style of links: orthogonal, straight or curved")
	filter := flag.String("filter", "", "CEL expression selecting classes (variables: name, kind, pkg, exported)")
	relationsPath := flag.String("relations", "", "File of declared relationships")
	implements := flag.Bool("implements", true, "Draw interface implementation edges")
	jsonOut := flag.Bool("json", false, "Print the analysis as JSON instead of writing a diagram")
	verify := flag.Bool("verify", false, "Read the written diagram back and print its node and edge counts")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Explicitly set flags override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pkg":
			cfg.Package = *pkg
		case "dir":
			cfg.Dir = *dir
		case "out":
			cfg.OutputDir = *outDir
		case "file":
			cfg.FileName = *fileName
		case "direction":
			cfg.Direction = *direction
		case "link-style":
			cfg.LinkStyle = *linkStyle
		case "filter":
			cfg.Filter = *filter
		case "relations":
			cfg.Relations = *relationsPath
		case "implements":
			cfg.ShowImplements = implements
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx := context.Background()

	if *jsonOut {
		an, err := analyzer.NewGoAnalyzer(cfg.Dir)
		if err != nil {
			fmt.Printf("Error creating analyzer: %v\n", err)
			os.Exit(1)
		}
		if err := an.Analyze(ctx, cfg.Package); err != nil {
			fmt.Printf("Error analyzing package: %v\n", err)
			os.Exit(1)
		}
		output, err := json.MarshalIndent(an.Result(), "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(output))
		return
	}

	var declared []relations.Relation
	if cfg.Relations != "" {
		rels, err := relations.ParseFile(cfg.Relations)
		if err != nil {
			fmt.Printf("Error reading relations: %v\n", err)
			os.Exit(1)
		}
		declared = rels
	}

	// Validate already checked both values.
	dirValue, _ := drawio.ParseDirection(cfg.Direction)
	linkValue, _ := drawio.ParseLinkStyle(cfg.LinkStyle)

	path, err := diagram.GenerateClassDiagram(ctx, cfg.Package, diagram.Options{
		Dir:            cfg.Dir,
		OutputDir:      cfg.OutputDir,
		FileName:       cfg.FileName,
		Direction:      dirValue,
		LinkStyle:      linkValue,
		Filter:         cfg.Filter,
		Declared:       declared,
		HideImplements: !cfg.Implements(),
	})
	if err != nil {
		fmt.Printf("Error generating diagram: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Diagram generated at: %s\n", path)
	fmt.Println("You can open this file with draw.io or the draw.io VS Code extension.")

	if *verify {
		doc, err := drawio.Read(path)
		if err != nil {
			fmt.Printf("Error reading diagram back: %v\n", err)
			os.Exit(1)
		}
		s := doc.Summary()
		fmt.Printf("Nodes: %d, edges: %d\n", s.Nodes, s.Edges)
	}
}
