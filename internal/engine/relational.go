package engine

import (
	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/value"
)

func resolveBinary(e *Engine, ins instr.Instruction) (value.Value, value.Value, error) {
	a, err := instr.ResolveSymb(e.frames, ins.Args[1])
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	b, err := instr.ResolveSymb(e.frames, ins.Args[2])
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	return a, b, nil
}

func storeBool(e *Engine, ins instr.Instruction, b bool) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	if err := e.frames.Set(fr, name, value.NewBool(b)); err != nil {
		return 0, err
	}
	return noJump, nil
}

func opLt(e *Engine, ins instr.Instruction) (int, error) {
	a, b, err := resolveBinary(e, ins)
	if err != nil {
		return 0, err
	}
	lt, err := value.Less(a, b)
	if err != nil {
		return 0, err
	}
	return storeBool(e, ins, lt)
}

func opGt(e *Engine, ins instr.Instruction) (int, error) {
	a, b, err := resolveBinary(e, ins)
	if err != nil {
		return 0, err
	}
	gt, err := value.Less(b, a)
	if err != nil {
		return 0, err
	}
	return storeBool(e, ins, gt)
}

func opEq(e *Engine, ins instr.Instruction) (int, error) {
	a, b, err := resolveBinary(e, ins)
	if err != nil {
		return 0, err
	}
	eq, err := value.Equal(a, b)
	if err != nil {
		return 0, err
	}
	return storeBool(e, ins, eq)
}
