package engine

// applyOp computes left <op> right. Division by zero is an arithmetic
// error, distinct from errors inherited through references.
func applyOp(op byte, left, right float64) (float64, *CellError) {
	switch op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, div0Error()
		}
		return left / right, nil
	}
	// Parse admits only the four operators above.
	return 0, parseErrorf("unknown operator %q", string(op))
}

type stepStatus uint8

const (
	stepDone stepStatus = iota
	stepNeedRef
)

// frame is one in-flight cell evaluation on the resolver's explicit work
// stack. A frame pauses at a reference token until the referenced cell is
// resolved, then resumes at the same position.
type frame struct {
	coord  Coord
	tokens []Token
	pos    int
	stack  []float64
}

// run advances the stack machine until the expression finishes or reaches a
// reference token. Literals push their value; operators pop the right
// operand first, then the left, and push the result. On stepNeedRef the
// position still points at the reference token; the resolver supplies the
// value and resumes.
func (f *frame) run() (stepStatus, Coord, Result) {
	for f.pos < len(f.tokens) {
		t := f.tokens[f.pos]
		switch t.Kind {
		case tokenNumber:
			f.stack = append(f.stack, t.Number)
		case tokenOperator:
			n := len(f.stack)
			if n < 2 {
				return stepDone, Coord{}, Result{Err: stackErrorf("operator %q needs two operands", string(t.Op))}
			}
			left, right := f.stack[n-2], f.stack[n-1]
			v, err := applyOp(t.Op, left, right)
			if err != nil {
				return stepDone, Coord{}, Result{Err: err}
			}
			f.stack = append(f.stack[:n-2], v)
		case tokenReference:
			return stepNeedRef, t.Ref, Result{}
		}
		f.pos++
	}
	if len(f.stack) != 1 {
		return stepDone, Coord{}, Result{Err: stackErrorf("expression leaves %d values, want 1", len(f.stack))}
	}
	return stepDone, Coord{}, Result{Value: f.stack[0]}
}

// supply pushes the resolved value of the reference at the current position
// and advances past it.
func (f *frame) supply(v float64) {
	f.stack = append(f.stack, v)
	f.pos++
}
