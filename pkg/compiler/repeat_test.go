package compiler

import (
	"strings"
	"testing"
)

// expand undoes repeat encoding, one unit token per count.
func expand(toks []Token) []Token {
	var out []Token
	for _, t := range toks {
		for i := 0; i < t.Count; i++ {
			out = append(out, Token{Op: t.Op, Count: 1, Sym: t.Sym})
		}
	}
	return out
}

func TestEncodeRepeats_RoundTrip(t *testing.T) {
	lengths := []int{1, 2, 3, 50, 98, 99, 100, 101, 150, 198, 199, 297, 300}
	for _, n := range lengths {
		toks := Encode(strings.Repeat("+", n), nil)
		enc := EncodeRepeats(toks)
		if got := len(expand(enc)); got != n {
			t.Errorf("length %d: expanded back to %d", n, got)
		}
		for _, tok := range enc {
			if tok.Count < 1 || tok.Count > RepeatCap {
				t.Errorf("length %d: token count %d outside [1,%d]", n, tok.Count, RepeatCap)
			}
		}
		wantTokens := (n + RepeatCap - 1) / RepeatCap
		if len(enc) != wantTokens {
			t.Errorf("length %d: expected %d chunked tokens, got %d", n, wantTokens, len(enc))
		}
	}
}

func TestEncodeRepeats_MixedRuns(t *testing.T) {
	toks := EncodeRepeats(Encode("+++>>--", nil))
	want := []Token{
		{Op: IncCell, Count: 3},
		{Op: MoveRight, Count: 2},
		{Op: DecCell, Count: 2},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %v, got %v", want, toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], toks[i])
		}
	}
}

func TestEncodeRepeats_LoopMarkersNeverCounted(t *testing.T) {
	toks := EncodeRepeats(Encode("+[[", nil))
	for _, tok := range toks {
		if (tok.Op == LoopOpen || tok.Op == LoopClose) && tok.Count != 1 {
			t.Fatalf("loop marker with count %d", tok.Count)
		}
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %v", toks)
	}
}
