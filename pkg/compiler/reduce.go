package compiler

// Reduce replaces every innermost loop it can prove equivalent to a
// closed-form update with straight-line fragments. Loops it cannot prove stay
// in the stream unchanged; failure to reduce is a normal outcome, never an
// error. Only innermost bodies are analyzed: a loop whose body holds loop
// markers, or content already reduced to fragments, is left alone.
func Reduce(in []Token, useShift bool) []Node {
	out := make([]Node, 0, len(in))
	for i := 0; i < len(in); {
		t := in[i]
		if t.Op != LoopOpen {
			out = append(out, t)
			i++
			continue
		}
		j, ok := innermostClose(in, i)
		if !ok {
			// Nested or unterminated: emit the marker and keep walking;
			// any inner loop is found further along this same pass.
			out = append(out, t)
			i++
			continue
		}
		frags, ok := reduceBody(in[i+1:j], useShift)
		if !ok {
			for k := i; k <= j; k++ {
				out = append(out, in[k])
			}
			i = j + 1
			continue
		}
		for _, f := range frags {
			out = append(out, f)
		}
		i = j + 1
	}
	return out
}

// innermostClose finds the LoopClose matching the LoopOpen at open, provided
// no other loop marker sits between them.
func innermostClose(in []Token, open int) (int, bool) {
	for i := open + 1; i < len(in); i++ {
		switch in[i].Op {
		case LoopOpen:
			return 0, false
		case LoopClose:
			return i, true
		}
	}
	return 0, false
}

// One pending fragment of a reduction attempt, in emission order.
const (
	fragDelta = iota // cell[off] += cell[0]*coef, rescaled at the end
	fragClear        // cell[0] = 0, unconditional
	fragCond         // if cell[0] != 0 then cell[off] = 0
)

type frag struct {
	kind int
	off  int
	coef int
}

// reduceBody emulates one iteration of an innermost loop body and, when the
// loop provably terminates by counting its origin cell down, returns the
// equivalent loop-free fragments. The emitted sequence never moves the
// pointer.
func reduceBody(body []Token, useShift bool) ([]Stmt, bool) {
	// A per-iteration pointer drift cannot be expressed as a static offset
	// map, and anything beyond moves, arithmetic and clears is out of reach.
	bal := 0
	for _, t := range body {
		switch t.Op {
		case MoveRight:
			bal += t.Count
		case MoveLeft:
			bal -= t.Count
		case IncCell, DecCell, ClearCell:
		default:
			return nil, false
		}
	}
	if bal != 0 {
		return nil, false
	}

	pos := 0
	started := false
	divisor := 0
	clearedAtEnd := true
	var frags []frag

	for _, t := range body {
		switch t.Op {
		case MoveRight:
			pos += t.Count
		case MoveLeft:
			pos -= t.Count
		case IncCell, DecCell:
			if pos == 0 {
				if t.Op == IncCell {
					// The origin only grows here; on a native-width tape
					// that never counts down to zero.
					return nil, false
				}
				divisor += t.Count
				started = true
				continue
			}
			d := t.Count
			if t.Op == DecCell {
				d = -d
			}
			frags = append(frags, frag{kind: fragDelta, off: pos, coef: d})
		case ClearCell:
			if pos == 0 {
				frags = append(frags, frag{kind: fragClear})
				started = true
				clearedAtEnd = false
			} else {
				frags = append(frags, frag{kind: fragCond, off: pos})
			}
		}
	}
	if !started {
		// Nothing ever characterized the termination step.
		return nil, false
	}

	div := divisor
	if div == 0 {
		// Terminated by an origin clear: the loop runs at most once, and a
		// delta contributes its plain count, not a copy scaled by the
		// origin. Arithmetic in such a body keeps the loop in place.
		for _, f := range frags {
			if f.kind == fragDelta {
				return nil, false
			}
		}
		div = 1
	}

	out := make([]Stmt, 0, len(frags)+1)
	for _, f := range frags {
		switch f.kind {
		case fragClear:
			out = append(out, ClearStmt{})
		case fragCond:
			out = append(out, CondClearStmt{Off: f.off})
		case fragDelta:
			out = append(out, rescale(f, div, useShift))
		}
	}
	if clearedAtEnd {
		out = append(out, ClearStmt{})
	}
	return out, true
}

// rescale expresses one per-iteration coefficient relative to the divisor:
// plain copy when the quotient is one, an integer multiplier when it divides
// exactly, optionally a right shift for reciprocal powers of two, and the
// reduced reciprocal otherwise.
func rescale(f frag, div int, useShift bool) CopyStmt {
	c := f.coef
	neg := c < 0
	if neg {
		c = -c
	}
	g := gcd(c, div)
	mul, d := c/g, div/g
	if useShift && mul == 1 && d > 1 && d&(d-1) == 0 {
		return CopyStmt{Off: f.off, Neg: neg, Shift: log2(d)}
	}
	return CopyStmt{Off: f.off, Neg: neg, Mul: mul, Div: d}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func log2(n int) int {
	s := 0
	for n > 1 {
		n >>= 1
		s++
	}
	return s
}
