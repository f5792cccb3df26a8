// Command pegc compiles a PEG grammar file and parses an input file
// against it, printing the resulting parse tree.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/clarete/pegengine"
)

func main() {
	var (
		grammarPath = flag.String("grammar", "", "Path to the grammar file")
		inputPath   = flag.String("input", "", "Path to the input file to parse")
	)
	flag.Parse()

	if *grammarPath == "" {
		log.Fatal("Grammar not informed")
	}
	if *inputPath == "" {
		log.Fatal("Input not informed")
	}

	grammarData, err := os.ReadFile(*grammarPath)
	if err != nil {
		log.Fatalf("Can't read grammar file: %s", err.Error())
	}
	inputData, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Can't read input file: %s", err.Error())
	}

	grammar, err := parsing.NewGrammar(string(grammarData))
	if err != nil {
		log.Fatalf("Can't compile grammar: %s", err.Error())
	}

	tree, err := grammar.Parse(string(inputData))
	if err != nil {
		log.Fatalf("Can't parse input: %s", err.Error())
	}

	log.Printf("root rule: %s\n", grammar.Name())
	os.Stdout.WriteString(parsing.DumpNode(tree))
}
