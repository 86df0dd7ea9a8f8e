package engine

import (
	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/value"
)

func binaryBoolOp(e *Engine, ins instr.Instruction, op func(a, b bool) bool) (int, error) {
	a, b, err := resolveBinary(e, ins)
	if err != nil {
		return 0, err
	}
	if a.Kind != value.Bool || b.Kind != value.Bool {
		return 0, ipperr.New(ipperr.InvalidOperands, "%s requires two bool operands, got %s and %s", ins.Op, a.Kind, b.Kind)
	}
	return storeBool(e, ins, op(a.B, b.B))
}

func opAnd(e *Engine, ins instr.Instruction) (int, error) {
	return binaryBoolOp(e, ins, func(a, b bool) bool { return a && b })
}

func opOr(e *Engine, ins instr.Instruction) (int, error) {
	return binaryBoolOp(e, ins, func(a, b bool) bool { return a || b })
}

func opNot(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	v, err := instr.ResolveSymb(e.frames, ins.Args[1])
	if err != nil {
		return 0, err
	}
	if v.Kind != value.Bool {
		return 0, ipperr.New(ipperr.InvalidOperands, "NOT requires a bool operand, got %s", v.Kind)
	}
	if err := e.frames.Set(fr, name, value.NewBool(!v.B)); err != nil {
		return 0, err
	}
	return noJump, nil
}
