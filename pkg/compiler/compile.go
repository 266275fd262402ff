package compiler

import "github.com/bolknote/brainfuck/pkg/tape"

// Extension is an extra instruction registered for one compilation. Its
// symbol widens the accepted alphabet, Template is the statement the Emitter
// substitutes for it, and Exec, when set, lets the in-process Executor run
// it. The compiler treats the template as opaque.
type Extension struct {
	Template string
	Exec     func(*tape.Machine)
}

// Config carries everything a compilation depends on besides the source
// itself. The zero value compiles the plain eight-instruction language to Go.
type Config struct {
	// Extensions maps extra source symbols to their instruction.
	Extensions map[byte]Extension

	// Target overrides the statement templates. Nil means GoTarget.
	Target Target

	// UseShift lets the Reducer express reciprocal power-of-two scales as
	// right shifts. Off by default: shifting and integer division round
	// negative cells differently.
	UseShift bool
}

func (c Config) target() Target {
	if c.Target != nil {
		return c.Target
	}
	return GoTarget{}
}

// Compile translates source text into a complete generated program. input is
// the literal byte buffer baked into the program's bootstrap. Compilation
// always succeeds: unknown characters are discarded and loops that resist
// reduction simply stay loops.
func Compile(src string, input []byte, cfg Config) string {
	return Emit(CompileProgram(src, cfg), input, cfg.target(), cfg.Extensions)
}

// CompileProgram runs the full pipeline and returns the compiled stream,
// ready for Emit or for direct execution through an Executor.
func CompileProgram(src string, cfg Config) []Node {
	toks := Encode(Sanitize(src, cfg.Extensions), cfg.Extensions)
	toks = Fold(toks)
	toks = EncodeRepeats(toks)
	return Fuse(Reduce(toks, cfg.UseShift))
}

// Run compiles src and executes it immediately on m, or on a fresh machine
// when m is nil, and returns the machine for inspection. input seeds the
// fresh machine's buffer and is ignored when m is supplied.
func Run(src string, input []byte, cfg Config, m *tape.Machine) *tape.Machine {
	if m == nil {
		m = tape.NewMachine(input, nil, nil)
	}
	NewExecutor(CompileProgram(src, cfg), m, cfg).Run()
	return m
}
