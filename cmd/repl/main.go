package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/bolknote/brainfuck/pkg/compiler"
	"github.com/bolknote/brainfuck/pkg/tape"
)

const historyFile = ".bf_history"

const banner = `bf repl — programs run on a persistent tape
:dump shows the tape around the pointer, :reset clears it, :quit exits`

func main() {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	cfg := compiler.Config{}
	m := tape.NewMachine(nil, os.Stdin, os.Stdout)

	for {
		code, err := ln.Prompt("bf> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}

		switch strings.TrimSpace(code) {
		case "":
			continue
		case ":quit":
			return
		case ":reset":
			m = tape.NewMachine(nil, os.Stdin, os.Stdout)
			continue
		case ":dump":
			dump(m)
			continue
		}

		compiler.Run(code, nil, cfg, m)
		fmt.Println()
		ln.AppendHistory(code)
	}
}

// dump prints a small tape window centered on the pointer.
func dump(m *tape.Machine) {
	for off := -8; off <= 8; off++ {
		mark := " "
		if off == 0 {
			mark = ">"
		}
		fmt.Printf("%s[%+d] %d\n", mark, off, m.Cells[m.Ptr+off])
	}
}
