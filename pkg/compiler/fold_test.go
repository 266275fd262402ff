package compiler

import (
	"reflect"
	"testing"
)

func TestFold_MajorityCount(t *testing.T) {
	tests := []struct {
		src  string
		want []Opcode
	}{
		{"+++--", []Opcode{IncCell}},
		{"++---", []Opcode{DecCell}},
		{"++--", nil},
		{">><<<", []Opcode{MoveLeft}},
		{"+-+-++", []Opcode{IncCell, IncCell}},
		// A move breaks a value run: buckets never mix axes.
		{"++>--", []Opcode{IncCell, IncCell, MoveRight, DecCell, DecCell}},
		{"+.-", []Opcode{IncCell, Output, DecCell}},
	}
	for _, tt := range tests {
		got := ops(Fold(Encode(tt.src, nil)))
		if len(got) == 0 {
			got = nil
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.src, tt.want, got)
		}
	}
}

func TestFold_Idempotent(t *testing.T) {
	sources := []string{
		"+++---++",
		"><><>><<",
		"+>-<+>->>><<",
		"++[->>+<<]--..",
		"",
	}
	for _, src := range sources {
		once := Fold(Encode(src, nil))
		twice := Fold(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("%q: folding is not idempotent:\nonce:  %v\ntwice: %v", src, once, twice)
		}
	}
}

func TestFold_WeightsCounts(t *testing.T) {
	in := []Token{{Op: IncCell, Count: 5}, {Op: DecCell, Count: 2}}
	got := Fold(in)
	if len(got) != 3 {
		t.Fatalf("expected net 3 increments, got %v", got)
	}
	for _, tok := range got {
		if tok.Op != IncCell || tok.Count != 1 {
			t.Fatalf("expected unit increments, got %v", got)
		}
	}
}
