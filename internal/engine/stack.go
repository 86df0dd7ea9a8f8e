package engine

import (
	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipperr"
)

func opPushs(e *Engine, ins instr.Instruction) (int, error) {
	v, err := instr.ResolveSymb(e.frames, ins.Args[0])
	if err != nil {
		return 0, err
	}
	e.dataStack = append(e.dataStack, v)
	return noJump, nil
}

func opPops(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	if len(e.dataStack) == 0 {
		return 0, ipperr.New(ipperr.MissingValue, "POPS: data stack is empty")
	}
	top := e.dataStack[len(e.dataStack)-1]
	e.dataStack = e.dataStack[:len(e.dataStack)-1]
	if err := e.frames.Set(fr, name, top); err != nil {
		return 0, err
	}
	return noJump, nil
}
