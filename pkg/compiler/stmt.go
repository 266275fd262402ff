package compiler

import "github.com/bolknote/brainfuck/pkg/tape"

// Stmt is a statement fragment: a straight-line piece of the compiled
// program. Fragments render to target text through the Target templates and
// execute directly against a tape machine, so the compiled program can run
// in-process. Once created, a fragment is opaque to the Fuser.
type Stmt interface {
	Node
	Exec(m *tape.Machine)
	render(t Target) string
}

// AddStmt adds a constant to the cell at a fixed offset from the pointer.
// The pointer itself is untouched.
type AddStmt struct {
	Off   int
	Delta int
}

func (AddStmt) isNode() {}

func (s AddStmt) Exec(m *tape.Machine) { m.Add(s.Off, s.Delta) }

func (s AddStmt) render(t Target) string { return t.Add(s.Off, s.Delta) }

// ClearStmt zeroes the cell at a fixed offset from the pointer.
type ClearStmt struct {
	Off int
}

func (ClearStmt) isNode() {}

func (s ClearStmt) Exec(m *tape.Machine) { m.Set(s.Off, 0) }

func (s ClearStmt) render(t Target) string { return t.Set(s.Off) }

// CondClearStmt zeroes the cell at an offset only when the current cell is
// nonzero, mirroring a clear inside a loop that may never run.
type CondClearStmt struct {
	Off int
}

func (CondClearStmt) isNode() {}

func (s CondClearStmt) Exec(m *tape.Machine) { m.CondClear(s.Off) }

func (s CondClearStmt) render(t Target) string { return t.CondSet(s.Off) }

// CopyStmt adds the current cell, rescaled by Mul/Div (or right-shifted by
// Shift when nonzero), to the cell at Off. Neg subtracts instead. This is the
// closed form of one loop-carried contribution.
type CopyStmt struct {
	Off   int
	Neg   bool
	Mul   int
	Div   int
	Shift int
}

func (CopyStmt) isNode() {}

func (s CopyStmt) Exec(m *tape.Machine) { m.AddMul(s.Off, s.Neg, s.Mul, s.Div, s.Shift) }

func (s CopyStmt) render(t Target) string { return t.Copy(s.Off, s.Neg, s.Mul, s.Div, s.Shift) }

// MoveStmt shifts the pointer by Delta cells.
type MoveStmt struct {
	Delta int
}

func (MoveStmt) isNode() {}

func (s MoveStmt) Exec(m *tape.Machine) { m.Move(s.Delta) }

func (s MoveStmt) render(t Target) string { return t.Move(s.Delta) }

// AddMoveStmt updates the current cell then advances the pointer one step.
// The update runs first; the order is part of the contract.
type AddMoveStmt struct {
	Delta int
	Move  int
}

func (AddMoveStmt) isNode() {}

func (s AddMoveStmt) Exec(m *tape.Machine) {
	m.Add(0, s.Delta)
	m.Move(s.Move)
}

func (s AddMoveStmt) render(t Target) string { return t.AddMove(s.Delta, s.Move) }

// MoveAddStmt advances the pointer then updates the newly current cell.
type MoveAddStmt struct {
	Move  int
	Delta int
}

func (MoveAddStmt) isNode() {}

func (s MoveAddStmt) Exec(m *tape.Machine) {
	m.Move(s.Move)
	m.Add(0, s.Delta)
}

func (s MoveAddStmt) render(t Target) string { return t.MoveAdd(s.Move, s.Delta) }

// MoveClearStmt advances the pointer then zeroes the newly current cell.
type MoveClearStmt struct {
	Move int
}

func (MoveClearStmt) isNode() {}

func (s MoveClearStmt) Exec(m *tape.Machine) {
	m.Move(s.Move)
	m.Set(0, 0)
}

func (s MoveClearStmt) render(t Target) string { return t.MoveSet(s.Move) }

// ScanStmt walks the pointer toward the nearest zero cell, right when Dir is
// positive, left otherwise.
type ScanStmt struct {
	Dir int
}

func (ScanStmt) isNode() {}

func (s ScanStmt) Exec(m *tape.Machine) {
	if s.Dir > 0 {
		m.ScanRight()
	} else {
		m.ScanLeft()
	}
}

func (s ScanStmt) render(t Target) string {
	if s.Dir > 0 {
		return t.ScanRight()
	}
	return t.ScanLeft()
}
