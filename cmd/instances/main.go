// Command instances writes a diagram of sample pet-shop objects and the
// relationships between them.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/don7panic/codewiki-go-diagram/instances"
)

func main() {
	outDir := flag.String("out", ".", "Directory where the diagram will be saved")
	fileName := flag.String("file", instances.DefaultFileName, "Output file name")
	flag.Parse()

	path, err := instances.CreateInstanceDiagram(*outDir, *fileName)
	if err != nil {
		fmt.Printf("Error creating instance diagram: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Instance diagram generated at: %s\n", path)
	fmt.Println("You can open this file with draw.io or the draw.io VS Code extension.")
}
