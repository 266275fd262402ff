package compiler

// Fold collapses every maximal run drawn from one opposite pair, increment
// against decrement or right against left, down to its net effect. A run
// never mixes the value axis with the pointer axis, so each reduction is a
// two-bucket majority count. Folding its own output changes nothing.
func Fold(in []Token) []Token {
	out := make([]Token, 0, len(in))
	for i := 0; i < len(in); {
		plus, minus, ok := axis(in[i].Op)
		if !ok {
			out = append(out, in[i])
			i++
			continue
		}
		net := 0
		for i < len(in) && (in[i].Op == plus || in[i].Op == minus) {
			if in[i].Op == plus {
				net += in[i].Count
			} else {
				net -= in[i].Count
			}
			i++
		}
		op := plus
		if net < 0 {
			op, net = minus, -net
		}
		for k := 0; k < net; k++ {
			out = append(out, tok(op))
		}
	}
	return out
}

// axis maps a foldable opcode to its (positive, negative) pair.
func axis(op Opcode) (Opcode, Opcode, bool) {
	switch op {
	case IncCell, DecCell:
		return IncCell, DecCell, true
	case MoveRight, MoveLeft:
		return MoveRight, MoveLeft, true
	}
	return 0, 0, false
}
