package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/bolknote/brainfuck/pkg/compiler"
	"github.com/bolknote/brainfuck/pkg/tape"
)

const (
	opsPerFrame = 20000
	cellCols    = 16
	cellRows    = 8
	lineHeight  = 16
)

type Game struct {
	ex  *compiler.Executor
	vm  *tape.Machine
	out bytes.Buffer

	paused bool
	// view shifts the visible window relative to the pointer.
	view int
}

func (g *Game) Update() error {
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 256 {
			g.vm.In.Push(byte(r))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.vm.In.Push(10) // ASCII newline
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.view -= cellCols
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.view += cellCols
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.view = 0
	}

	if g.paused {
		return nil
	}

	// Run a fixed instruction budget per frame so drawing stays live even
	// for long or unterminated programs.
	for i := 0; i < opsPerFrame && !g.ex.Done(); i++ {
		g.ex.Step()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	status := "running"
	switch {
	case g.ex.Done():
		status = "done"
	case g.paused:
		status = "paused"
	}
	header := fmt.Sprintf("%s  ptr=%d  space pauses, arrows scroll, home recenters", status, g.vm.Ptr)
	ebitenutil.DebugPrintAt(screen, header, 8, 4)

	start := g.vm.Ptr - (cellCols*cellRows)/2 + g.view
	if start < 0 {
		start = 0
	}
	if start > tape.Size-cellCols*cellRows {
		start = tape.Size - cellCols*cellRows
	}
	for row := 0; row < cellRows; row++ {
		line := fmt.Sprintf("%6d:", start+row*cellCols)
		for col := 0; col < cellCols; col++ {
			idx := start + row*cellCols + col
			if idx == g.vm.Ptr {
				line += fmt.Sprintf(" >%4d", g.vm.Cells[idx])
			} else {
				line += fmt.Sprintf("  %4d", g.vm.Cells[idx])
			}
		}
		ebitenutil.DebugPrintAt(screen, line, 8, 28+row*lineHeight)
	}

	// Tail of the program's output below the tape window.
	outLines := lastLines(g.out.String(), 6)
	for i, line := range outLines {
		ebitenutil.DebugPrintAt(screen, line, 8, 28+(cellRows+1)*lineHeight+i*lineHeight)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 640, 320
}

func lastLines(s string, n int) []string {
	var lines []string
	for _, l := range bytes.Split([]byte(s), []byte{'\n'}) {
		lines = append(lines, string(l))
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

func main() {
	input := flag.String("input", "", "pre-supplied input bytes")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: desktop [flags] program.b")
		os.Exit(2)
	}
	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to read source file: %v", err)
	}

	cfg := compiler.Config{}
	g := &Game{}
	g.vm = tape.NewMachine([]byte(*input), nil, &g.out)
	g.ex = compiler.NewExecutor(compiler.CompileProgram(string(source), cfg), g.vm, cfg)

	ebiten.SetWindowSize(1280, 640)
	ebiten.SetWindowTitle("bf tape")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
