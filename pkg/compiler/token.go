package compiler

// Opcode identifies one internal instruction. The first eight map straight
// onto the source alphabet; ClearCell, ScanRight and ScanLeft are recognized
// idioms that never reach loop analysis; Ext carries a registered extension
// symbol.
type Opcode byte

const (
	IncCell Opcode = iota
	DecCell
	MoveRight
	MoveLeft
	LoopOpen
	LoopClose
	Output
	Input
	ClearCell
	ScanRight
	ScanLeft
	Ext
)

var opNames = [...]string{
	IncCell:   "inc",
	DecCell:   "dec",
	MoveRight: "right",
	MoveLeft:  "left",
	LoopOpen:  "open",
	LoopClose: "close",
	Output:    "out",
	Input:     "in",
	ClearCell: "clear",
	ScanRight: "scanr",
	ScanLeft:  "scanl",
	Ext:       "ext",
}

func (op Opcode) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// Token is one element of the instruction stream: an opcode applied Count
// times in a row. Count is always at least 1. Sym holds the source symbol of
// an extension opcode and is zero otherwise.
type Token struct {
	Op    Opcode
	Count int
	Sym   byte
}

func tok(op Opcode) Token {
	return Token{Op: op, Count: 1}
}

func (Token) isNode() {}

// Node is one element of the compiled stream: either a raw Token or a
// statement fragment produced by the Reducer or the Fuser. Fragments are
// opaque to later pattern matching.
type Node interface {
	isNode()
}
