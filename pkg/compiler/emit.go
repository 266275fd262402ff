package compiler

import (
	"fmt"
	"strings"
)

// Target supplies the fixed statement templates the Emitter substitutes for
// the compiled stream. The bootstrap preamble owns tape allocation and the
// literal input buffer; everything in between is one statement per fragment,
// concatenated in program order.
type Target interface {
	Preamble(input []byte) string
	Postamble() string
	Indent(depth int) string

	LoopOpen() string
	LoopClose() string
	Output() string
	Input() string
	ScanRight() string
	ScanLeft() string

	Add(off, delta int) string
	Set(off int) string
	CondSet(off int) string
	Copy(off int, neg bool, mul, div, shift int) string
	Move(delta int) string
	AddMove(delta, move int) string
	MoveAdd(move, delta int) string
	MoveSet(move int) string
}

// Emit renders a compiled program to target source text. Statement order is
// execution order; no structure beyond loop markers survives to this point.
func Emit(prog []Node, input []byte, t Target, exts map[byte]Extension) string {
	var b strings.Builder
	b.WriteString(t.Preamble(input))
	depth := 1
	for _, n := range prog {
		switch v := n.(type) {
		case Stmt:
			line(&b, t, depth, v.render(t))
		case Token:
			switch v.Op {
			case LoopOpen:
				line(&b, t, depth, t.LoopOpen())
				depth++
			case LoopClose:
				// A stray close never dedents past the function body.
				if depth > 1 {
					depth--
				}
				line(&b, t, depth, t.LoopClose())
			case Output:
				for k := 0; k < v.Count; k++ {
					line(&b, t, depth, t.Output())
				}
			case Input:
				for k := 0; k < v.Count; k++ {
					line(&b, t, depth, t.Input())
				}
			case ScanRight:
				line(&b, t, depth, t.ScanRight())
			case ScanLeft:
				line(&b, t, depth, t.ScanLeft())
			case Ext:
				if ext, ok := exts[v.Sym]; ok {
					for k := 0; k < v.Count; k++ {
						line(&b, t, depth, ext.Template)
					}
				}
			}
		}
	}
	b.WriteString(t.Postamble())
	return b.String()
}

func line(b *strings.Builder, t Target, depth int, s string) {
	b.WriteString(t.Indent(depth))
	b.WriteString(s)
	b.WriteByte('\n')
}

// GoTarget emits a self-contained Go program: a 64K tape of ints, the pointer
// mid-tape, buffered stdout, and an input buffer refilled line by line from
// stdin with a zero sentinel.
type GoTarget struct{}

const goPreamble = `// Code generated by bfc. DO NOT EDIT.
package main

import (
	"bufio"
	"os"
)

var (
	m   [65536]int
	p   = 32768
	buf = []byte(%q)
	cur int
	out = bufio.NewWriter(os.Stdout)
	in  = bufio.NewReader(os.Stdin)
)

func read() int {
	if cur >= len(buf) {
		line, err := in.ReadBytes('\n')
		if err != nil && len(line) == 0 {
			return 0
		}
		buf = append(line, 0)
		cur = 0
	}
	b := buf[cur]
	cur++
	return int(b)
}

func write(v int) {
	out.WriteByte(byte(v))
}

func main() {
	defer out.Flush()
`

func (GoTarget) Preamble(input []byte) string {
	return fmt.Sprintf(goPreamble, string(input))
}

func (GoTarget) Postamble() string { return "}\n" }

func (GoTarget) Indent(depth int) string { return strings.Repeat("\t", depth) }

func (GoTarget) LoopOpen() string { return "for m[p] != 0 {" }

func (GoTarget) LoopClose() string { return "}" }

func (GoTarget) Output() string { return "write(m[p])" }

func (GoTarget) Input() string { return "m[p] = read()" }

func (GoTarget) ScanRight() string { return "for m[p] != 0 { p++ }" }

func (GoTarget) ScanLeft() string { return "for m[p] != 0 { p-- }" }

func (GoTarget) Add(off, delta int) string {
	return step(cell(off), delta)
}

func (GoTarget) Set(off int) string { return cell(off) + " = 0" }

func (GoTarget) CondSet(off int) string {
	return fmt.Sprintf("if m[p] != 0 { %s = 0 }", cell(off))
}

func (GoTarget) Copy(off int, neg bool, mul, div, shift int) string {
	rhs := "m[p]"
	switch {
	case shift > 0:
		rhs = fmt.Sprintf("m[p] >> %d", shift)
	case mul > 1 && div > 1:
		rhs = fmt.Sprintf("m[p] * %d / %d", mul, div)
	case mul > 1:
		rhs = fmt.Sprintf("m[p] * %d", mul)
	case div > 1:
		rhs = fmt.Sprintf("m[p] / %d", div)
	}
	op := "+="
	if neg {
		op = "-="
	}
	return fmt.Sprintf("%s %s %s", cell(off), op, rhs)
}

func (GoTarget) Move(delta int) string { return ptr(delta) }

func (GoTarget) AddMove(delta, move int) string {
	return step("m[p]", delta) + "; " + ptr(move)
}

func (GoTarget) MoveAdd(move, delta int) string {
	return ptr(move) + "; " + step("m[p]", delta)
}

func (GoTarget) MoveSet(move int) string {
	return ptr(move) + "; m[p] = 0"
}

// cell names the cell at a fixed offset from the pointer.
func cell(off int) string {
	switch {
	case off > 0:
		return fmt.Sprintf("m[p+%d]", off)
	case off < 0:
		return fmt.Sprintf("m[p-%d]", -off)
	}
	return "m[p]"
}

// ptr renders a pointer adjustment.
func ptr(delta int) string {
	switch delta {
	case 1:
		return "p++"
	case -1:
		return "p--"
	}
	if delta < 0 {
		return fmt.Sprintf("p -= %d", -delta)
	}
	return fmt.Sprintf("p += %d", delta)
}

// step renders a constant adjustment of a cell.
func step(lhs string, delta int) string {
	switch delta {
	case 1:
		return lhs + "++"
	case -1:
		return lhs + "--"
	}
	if delta < 0 {
		return fmt.Sprintf("%s -= %d", lhs, -delta)
	}
	return fmt.Sprintf("%s += %d", lhs, delta)
}
