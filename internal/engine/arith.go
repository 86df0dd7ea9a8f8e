package engine

import (
	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/value"
)

// binaryIntOp resolves ins's two source operands (args[1], args[2]),
// requires both to be Int, and writes the result of op into the
// destination named by args[0].
func binaryIntOp(e *Engine, ins instr.Instruction, op func(a, b int64) (int64, error)) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	a, err := instr.ResolveSymb(e.frames, ins.Args[1])
	if err != nil {
		return 0, err
	}
	b, err := instr.ResolveSymb(e.frames, ins.Args[2])
	if err != nil {
		return 0, err
	}
	if a.Kind != value.Int || b.Kind != value.Int {
		return 0, ipperr.New(ipperr.InvalidOperands, "%s requires two int operands, got %s and %s", ins.Op, a.Kind, b.Kind)
	}
	result, err := op(a.I, b.I)
	if err != nil {
		return 0, err
	}
	if err := e.frames.Set(fr, name, value.NewInt(result)); err != nil {
		return 0, err
	}
	return noJump, nil
}

func opAdd(e *Engine, ins instr.Instruction) (int, error) {
	return binaryIntOp(e, ins, func(a, b int64) (int64, error) { return a + b, nil })
}

func opSub(e *Engine, ins instr.Instruction) (int, error) {
	return binaryIntOp(e, ins, func(a, b int64) (int64, error) { return a - b, nil })
}

func opMul(e *Engine, ins instr.Instruction) (int, error) {
	return binaryIntOp(e, ins, func(a, b int64) (int64, error) { return a * b, nil })
}

// opIdiv implements integer division truncating toward negative
// infinity (floor division), matching the source interpreter's
// semantics rather than Go's truncate-toward-zero "/".
func opIdiv(e *Engine, ins instr.Instruction) (int, error) {
	return binaryIntOp(e, ins, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, ipperr.New(ipperr.InvalidOperandValue, "division by zero")
		}
		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q--
		}
		return q, nil
	})
}
