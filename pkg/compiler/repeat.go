package compiler

// RepeatCap bounds the count carried by a single token. Longer runs split
// into successive capped tokens, which keeps every embedded literal small for
// the pattern matching that follows.
const RepeatCap = 99

// EncodeRepeats rewrites every maximal run of two or more identical opcodes
// into count-prefixed tokens. Loop markers are structural and never counted;
// extension tokens only merge when they share a symbol.
func EncodeRepeats(in []Token) []Token {
	out := make([]Token, 0, len(in))
	for i := 0; i < len(in); {
		t := in[i]
		if t.Op == LoopOpen || t.Op == LoopClose {
			out = append(out, t)
			i++
			continue
		}
		total := 0
		for i < len(in) && in[i].Op == t.Op && in[i].Sym == t.Sym {
			total += in[i].Count
			i++
		}
		for total > RepeatCap {
			out = append(out, Token{Op: t.Op, Count: RepeatCap, Sym: t.Sym})
			total -= RepeatCap
		}
		out = append(out, Token{Op: t.Op, Count: total, Sym: t.Sym})
	}
	return out
}
