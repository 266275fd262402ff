package compiler

import (
	"bytes"
	"testing"

	"github.com/bolknote/brainfuck/pkg/tape"
)

// runCompiled executes the compiled form of src on a fresh machine.
func runCompiled(src string, input []byte) (*tape.Machine, []byte) {
	var out bytes.Buffer
	m := tape.NewMachine(input, nil, &out)
	NewExecutor(CompileProgram(src, Config{}), m, Config{}).Run()
	return m, out.Bytes()
}

// runNaive executes src on the direct per-instruction interpreter.
func runNaive(src string, input []byte) (*tape.Machine, []byte) {
	var out bytes.Buffer
	m := tape.NewMachine(input, nil, &out)
	tape.Interpret(Sanitize(src, nil), m)
	return m, out.Bytes()
}

// assertEquivalent runs src both ways and demands identical output, tape
// window and pointer.
func assertEquivalent(t *testing.T, src string, input []byte) {
	t.Helper()
	cm, cout := runCompiled(src, input)
	nm, nout := runNaive(src, input)
	if !bytes.Equal(cout, nout) {
		t.Fatalf("%q: output differs\ncompiled: %v\nnaive:    %v", src, cout, nout)
	}
	if cm.Ptr != nm.Ptr {
		t.Fatalf("%q: pointer differs: compiled %d, naive %d", src, cm.Ptr, nm.Ptr)
	}
	for off := -32; off <= 32; off++ {
		if cm.Cells[cm.Ptr+off] != nm.Cells[nm.Ptr+off] {
			t.Fatalf("%q: cell at %+d differs: compiled %d, naive %d",
				src, off, cm.Cells[cm.Ptr+off], nm.Cells[nm.Ptr+off])
		}
	}
}

func TestE2E_EmptyProgram(t *testing.T) {
	_, out := runCompiled("", nil)
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
}

func TestE2E_ClearThenOutput(t *testing.T) {
	_, out := runCompiled("+++[-].", nil)
	if len(out) != 1 || out[0] != 0 {
		t.Fatalf("expected one zero byte, got %v", out)
	}
}

func TestE2E_CopyLoop(t *testing.T) {
	m, _ := runCompiled("+++++[->+>+<<]", nil)
	home := tape.Size / 2
	if m.Ptr != home {
		t.Fatalf("pointer moved to %d", m.Ptr)
	}
	if m.Cells[home] != 0 || m.Cells[home+1] != 5 || m.Cells[home+2] != 5 {
		t.Fatalf("expected 0/5/5, got %d/%d/%d",
			m.Cells[home], m.Cells[home+1], m.Cells[home+2])
	}
}

func TestE2E_ScanRightLandsOnFirstZero(t *testing.T) {
	// Build a nonzero run, return to its start, then scan.
	src := "+>+>+>+<<<[>]"
	m, _ := runCompiled(src, nil)
	if off := m.Ptr - tape.Size/2; off != 4 {
		t.Fatalf("expected pointer on first zero at +4, got %+d", off)
	}
	assertEquivalent(t, src, nil)
}

func TestE2E_DriftingLoopStaysALoop(t *testing.T) {
	src := "+++[->>+<]"
	nodes := CompileProgram(src, Config{})
	hasLoop := false
	for _, n := range nodes {
		if tk, ok := n.(Token); ok && tk.Op == LoopOpen {
			hasLoop = true
		}
	}
	if !hasLoop {
		t.Fatalf("drifting loop was reduced: %v", nodes)
	}
	assertEquivalent(t, src, nil)
}

func TestE2E_DivisorLoop(t *testing.T) {
	src := "++++++[>++<->>+++<<-->>>+++++<<<]"
	m, _ := runCompiled(src, nil)
	home := tape.Size / 2
	want := []int{0, 4, 6, 10}
	for i, w := range want {
		if got := m.Cells[home+i]; got != w {
			t.Errorf("cell +%d: expected %d, got %d", i, w, got)
		}
	}
	assertEquivalent(t, src, nil)
}

func TestE2E_InputEcho(t *testing.T) {
	_, out := runCompiled(",.,.,.", []byte("hey"))
	if string(out) != "hey" {
		t.Fatalf("expected %q, got %q", "hey", string(out))
	}
	assertEquivalent(t, ",.,.,.", []byte("hey"))
}

func TestE2E_HelloWorld(t *testing.T) {
	src := "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]" +
		">>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."
	cout := runBoth(t, src)
	if string(cout) != "Hello World!\n" {
		t.Fatalf("expected %q, got %q", "Hello World!\n", string(cout))
	}
}

func TestE2E_LargeRunsAcrossRepeatCap(t *testing.T) {
	// 120 increments crosses the per-token count cap.
	src := ""
	for i := 0; i < 120; i++ {
		src += "+"
	}
	src += ".>"
	m, out := runCompiled(src, nil)
	if len(out) != 1 || out[0] != 120 {
		t.Fatalf("expected byte 120, got %v", out)
	}
	if m.Ptr != tape.Size/2+1 {
		t.Fatalf("pointer at %d", m.Ptr)
	}
	assertEquivalent(t, src, nil)
}

func TestE2E_MixedProgram(t *testing.T) {
	cases := []string{
		"++[->+<]>.",
		"+++++[->++<]>-.",
		"+++++[>+++++++<-]>++.",
		"+[>+<-]+[>-<-]>.",
		">>>+++[-<+>]<.",
		"++>++<[->[-]<]",
		"+++++[>++<[-]]",
		"+[>[-]<[-]]>",
	}
	for _, src := range cases {
		assertEquivalent(t, src, nil)
	}
}

// runBoth asserts equivalence and returns the (shared) output.
func runBoth(t *testing.T, src string) []byte {
	t.Helper()
	assertEquivalent(t, src, nil)
	_, out := runCompiled(src, nil)
	return out
}

func TestE2E_Extension(t *testing.T) {
	calls := 0
	cfg := Config{Extensions: map[byte]Extension{
		'Y': {
			Template: "spawn()",
			Exec:     func(m *tape.Machine) { calls++; m.Cells[m.Ptr] = 1 },
		},
	}}
	var out bytes.Buffer
	m := tape.NewMachine(nil, nil, &out)
	NewExecutor(CompileProgram("YY.", cfg), m, cfg).Run()
	if calls != 2 {
		t.Fatalf("expected 2 extension calls, got %d", calls)
	}
	if got := out.Bytes(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected byte 1, got %v", got)
	}
}
