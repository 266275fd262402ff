package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bolknote/brainfuck/pkg/compiler"
	"github.com/bolknote/brainfuck/pkg/tape"
)

func main() {
	showSrc := flag.Bool("show-src", false, "print the generated Go source before running")
	naive := flag.Bool("naive", false, "run the direct interpreter instead of the compiled stream")
	input := flag.String("input", "", "pre-supplied input bytes")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: console [flags] program.b")
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to read source file: %v", err)
	}

	cfg := compiler.Config{}
	if *showSrc {
		fmt.Println(compiler.Compile(string(source), []byte(*input), cfg))
	}

	m := tape.NewMachine([]byte(*input), os.Stdin, os.Stdout)
	if *naive {
		tape.Interpret(compiler.Sanitize(string(source), nil), m)
		return
	}
	compiler.Run(string(source), nil, cfg, m)
}
