package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bolknote/brainfuck/pkg/compiler"
	"github.com/bolknote/brainfuck/pkg/tape"
)

func main() {
	inPath := flag.String("in", "", "input source file path")
	outPath := flag.String("out", "", "output Go file path (default: input with .go extension)")
	inputStr := flag.String("input", "", "literal input bytes baked into the generated program")
	runProgram := flag.Bool("run", false, "run the program in-process instead of writing a file")
	naive := flag.Bool("naive", false, "with -run, use the direct interpreter instead of the compiled stream")
	useShift := flag.Bool("shift", false, "rescale reciprocal powers of two with right shifts")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in to compile, add -run to execute it")
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read source file %q: %v\n", *inPath, err)
		os.Exit(1)
	}

	cfg := compiler.Config{UseShift: *useShift}

	if *runProgram {
		m := tape.NewMachine([]byte(*inputStr), os.Stdin, os.Stdout)
		if *naive {
			tape.Interpret(compiler.Sanitize(string(source), nil), m)
		} else {
			compiler.Run(string(source), nil, cfg, m)
		}
		return
	}

	code := compiler.Compile(string(source), []byte(*inputStr), cfg)

	output := *outPath
	if output == "" {
		output = defaultOutputPath(*inPath)
	}
	if err := os.WriteFile(output, []byte(code), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %q: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("compiled %d bytes -> %s\n", len(code), output)
}

func defaultOutputPath(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + ".go"
}
