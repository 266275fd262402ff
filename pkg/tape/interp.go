package tape

// Interpret runs raw source directly on the machine, one instruction per
// step, with no optimization at all. It is the reference oracle the compiled
// output is checked against. Characters outside the eight-instruction
// alphabet are skipped.
func Interpret(src string, m *Machine) {
	jump := matchBrackets(src)
	for pc := 0; pc < len(src); pc++ {
		switch src[pc] {
		case '+':
			m.Cells[m.Ptr]++
		case '-':
			m.Cells[m.Ptr]--
		case '>':
			m.Ptr++
		case '<':
			m.Ptr--
		case '.':
			m.Output()
		case ',':
			m.Read()
		case '[':
			if m.Cells[m.Ptr] == 0 {
				pc = jump[pc]
			}
		case ']':
			if m.Cells[m.Ptr] != 0 {
				pc = jump[pc]
			}
		}
	}
}

// matchBrackets pairs every '[' with its ']' by index. Unmatched brackets
// map to themselves and act as no-ops.
func matchBrackets(src string) map[int]int {
	jump := make(map[int]int)
	var stack []int
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '[':
			stack = append(stack, i)
		case ']':
			if len(stack) == 0 {
				jump[i] = i
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jump[open] = i
			jump[i] = open
		}
	}
	for _, open := range stack {
		jump[open] = len(src) - 1
	}
	return jump
}
