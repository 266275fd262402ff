package compiler

// Sanitize drops every character outside the instruction alphabet. Registered
// extension symbols widen the accepted set. Out-of-alphabet characters are
// discarded silently, never rejected.
func Sanitize(src string, exts map[byte]Extension) string {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '+', '-', '>', '<', '[', ']', '.', ',':
			out = append(out, c)
		default:
			if _, ok := exts[c]; ok {
				out = append(out, c)
			}
		}
	}
	return string(out)
}

// Encode maps sanitized source to the internal token stream. The three-symbol
// idioms are recognized literally, left to right and non-overlapping, before
// generic per-character mapping, so they never enter loop analysis. A loop
// standing at the very start of the resulting stream is deleted together with
// its matching close: the tape is all-zero at entry, so that loop can never
// run, and later analysis relies on it being gone.
func Encode(src string, exts map[byte]Extension) []Token {
	toks := make([]Token, 0, len(src))
	for i := 0; i < len(src); {
		if i+3 <= len(src) {
			switch src[i : i+3] {
			case "[-]", "[+]":
				toks = append(toks, tok(ClearCell))
				i += 3
				continue
			case "[>]":
				toks = append(toks, tok(ScanRight))
				i += 3
				continue
			case "[<]":
				toks = append(toks, tok(ScanLeft))
				i += 3
				continue
			}
		}
		c := src[i]
		i++
		switch c {
		case '+':
			toks = append(toks, tok(IncCell))
		case '-':
			toks = append(toks, tok(DecCell))
		case '>':
			toks = append(toks, tok(MoveRight))
		case '<':
			toks = append(toks, tok(MoveLeft))
		case '[':
			toks = append(toks, tok(LoopOpen))
		case ']':
			toks = append(toks, tok(LoopClose))
		case '.':
			toks = append(toks, tok(Output))
		case ',':
			toks = append(toks, tok(Input))
		default:
			if _, ok := exts[c]; ok {
				toks = append(toks, Token{Op: Ext, Count: 1, Sym: c})
			}
		}
	}
	return stripDeadLoops(toks)
}

// stripDeadLoops removes loops guarded by a cell that provably still holds
// its initial zero. After one leading loop goes, the next token may be a loop
// again, still guarded by an untouched tape, so the strip repeats.
func stripDeadLoops(toks []Token) []Token {
	for len(toks) > 0 && toks[0].Op == LoopOpen {
		end, ok := matchClose(toks, 0)
		if !ok {
			break
		}
		toks = toks[end+1:]
	}
	return toks
}

// matchClose returns the index of the LoopClose matching the LoopOpen at
// open, or false when the stream ends first.
func matchClose(toks []Token, open int) (int, bool) {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Op {
		case LoopOpen:
			depth++
		case LoopClose:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
