package compiler

import "github.com/bolknote/brainfuck/pkg/tape"

// Executor runs a compiled program in-process on a tape machine: fragments
// execute directly, residual loops branch through a precomputed bracket map.
// Step-wise execution is exposed so front ends can interleave drawing or
// input with progress.
type Executor struct {
	prog []Node
	m    *tape.Machine
	exts map[byte]Extension
	jump map[int]int
	pc   int
}

// NewExecutor prepares prog for execution on m.
func NewExecutor(prog []Node, m *tape.Machine, cfg Config) *Executor {
	jump := make(map[int]int)
	var stack []int
	for i, n := range prog {
		t, ok := n.(Token)
		if !ok {
			continue
		}
		switch t.Op {
		case LoopOpen:
			stack = append(stack, i)
		case LoopClose:
			if len(stack) == 0 {
				jump[i] = i
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jump[open] = i
			jump[i] = open
		}
	}
	for _, open := range stack {
		jump[open] = len(prog) - 1
	}
	return &Executor{prog: prog, m: m, exts: cfg.Extensions, jump: jump}
}

// Machine exposes the underlying tape machine.
func (e *Executor) Machine() *tape.Machine { return e.m }

// Done reports whether the program has run to completion.
func (e *Executor) Done() bool { return e.pc >= len(e.prog) }

// Run executes the remainder of the program.
func (e *Executor) Run() {
	for !e.Done() {
		e.Step()
	}
}

// Step executes a single program element.
func (e *Executor) Step() {
	if e.Done() {
		return
	}
	switch n := e.prog[e.pc].(type) {
	case Stmt:
		n.Exec(e.m)
		e.pc++
	case Token:
		e.stepToken(n)
	default:
		e.pc++
	}
}

func (e *Executor) stepToken(t Token) {
	switch t.Op {
	case LoopOpen:
		if e.m.Cells[e.m.Ptr] == 0 {
			e.pc = e.jump[e.pc]
		}
		e.pc++
	case LoopClose:
		if back := e.jump[e.pc]; back != e.pc && e.m.Cells[e.m.Ptr] != 0 {
			e.pc = back
			return
		}
		e.pc++
	case Output:
		for k := 0; k < t.Count; k++ {
			e.m.Output()
		}
		e.pc++
	case Input:
		for k := 0; k < t.Count; k++ {
			e.m.Read()
		}
		e.pc++
	case Ext:
		if ext, ok := e.exts[t.Sym]; ok && ext.Exec != nil {
			for k := 0; k < t.Count; k++ {
				ext.Exec(e.m)
			}
		}
		e.pc++
	default:
		// Raw arithmetic only survives to this point inside unreduced
		// loops; apply it directly.
		e.stepRaw(t)
		e.pc++
	}
}

func (e *Executor) stepRaw(t Token) {
	switch t.Op {
	case IncCell:
		e.m.Add(0, t.Count)
	case DecCell:
		e.m.Add(0, -t.Count)
	case MoveRight:
		e.m.Move(t.Count)
	case MoveLeft:
		e.m.Move(-t.Count)
	case ClearCell:
		e.m.Set(0, 0)
	case ScanRight:
		e.m.ScanRight()
	case ScanLeft:
		e.m.ScanLeft()
	}
}
