package compiler

// Fuse rewrites idiomatic opcode neighborhoods into single fused statements.
// It runs over the whole stream after reduction: fragments already emitted by
// the Reducer are opaque and never re-matched, while the bodies of loops the
// Reducer declined still consist of raw tokens and fuse like any other
// segment. Four pattern families apply at each position, most specific
// first:
//
//	a. move(n) op move(n back)  ->  update at fixed offset, pointer untouched
//	b. op move(1)               ->  update current cell, advance one step
//	c. move(n) op               ->  advance n, update the new cell
//	d. bare op or move          ->  the direct single-operation statement
//
// Loop markers, input, output and extension tokens pass through for the
// Emitter.
func Fuse(in []Node) []Node {
	out := make([]Node, 0, len(in))
	for i := 0; i < len(in); {
		t, ok := in[i].(Token)
		if !ok {
			out = append(out, in[i])
			i++
			continue
		}

		// a: zero net displacement around a single update.
		if d := moveDelta(t); d != 0 && i+2 < len(in) {
			mid, okMid := in[i+1].(Token)
			back, okBack := in[i+2].(Token)
			if okMid && okBack && isUpdate(mid.Op) && moveDelta(back) == -d {
				if mid.Op == ClearCell {
					out = append(out, ClearStmt{Off: d})
				} else {
					out = append(out, AddStmt{Off: d, Delta: cellDelta(mid)})
				}
				i += 3
				continue
			}
		}

		// b: update then a single pointer step.
		if (t.Op == IncCell || t.Op == DecCell) && i+1 < len(in) {
			if mv, okMv := in[i+1].(Token); okMv {
				if d := moveDelta(mv); d == 1 || d == -1 {
					out = append(out, AddMoveStmt{Delta: cellDelta(t), Move: d})
					i += 2
					continue
				}
			}
		}

		// c: pointer advance then an update of the new cell.
		if d := moveDelta(t); d != 0 && i+1 < len(in) {
			if mid, okMid := in[i+1].(Token); okMid && isUpdate(mid.Op) {
				if mid.Op == ClearCell {
					out = append(out, MoveClearStmt{Move: d})
				} else {
					out = append(out, MoveAddStmt{Move: d, Delta: cellDelta(mid)})
				}
				i += 2
				continue
			}
		}

		// d: bare operation.
		switch t.Op {
		case IncCell, DecCell:
			out = append(out, AddStmt{Delta: cellDelta(t)})
		case ClearCell:
			out = append(out, ClearStmt{})
		case MoveRight, MoveLeft:
			out = append(out, MoveStmt{Delta: moveDelta(t)})
		case ScanRight:
			out = append(out, ScanStmt{Dir: 1})
		case ScanLeft:
			out = append(out, ScanStmt{Dir: -1})
		default:
			out = append(out, t)
		}
		i++
	}
	return out
}

// moveDelta returns the signed pointer displacement of a move token, zero for
// anything else.
func moveDelta(t Token) int {
	switch t.Op {
	case MoveRight:
		return t.Count
	case MoveLeft:
		return -t.Count
	}
	return 0
}

// cellDelta returns the signed value change of an arithmetic token.
func cellDelta(t Token) int {
	if t.Op == DecCell {
		return -t.Count
	}
	return t.Count
}

func isUpdate(op Opcode) bool {
	return op == IncCell || op == DecCell || op == ClearCell
}
