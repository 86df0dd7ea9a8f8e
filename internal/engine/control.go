package engine

import (
	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/value"
)

// opLabel is a no-op at execution time; the loader already resolved
// every label into the label table before execution began.
func opLabel(_ *Engine, _ instr.Instruction) (int, error) {
	return noJump, nil
}

func opJump(e *Engine, ins instr.Instruction) (int, error) {
	target, err := e.labelTarget(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	return target, nil
}

func condition(e *Engine, ins instr.Instruction) (bool, error) {
	a, err := instr.ResolveSymb(e.frames, ins.Args[1])
	if err != nil {
		return false, err
	}
	b, err := instr.ResolveSymb(e.frames, ins.Args[2])
	if err != nil {
		return false, err
	}
	return value.Equal(a, b)
}

func opJumpIfEq(e *Engine, ins instr.Instruction) (int, error) {
	eq, err := condition(e, ins)
	if err != nil {
		return 0, err
	}
	if !eq {
		return noJump, nil
	}
	return e.labelTarget(ins.Args[0].Text)
}

func opJumpIfNeq(e *Engine, ins instr.Instruction) (int, error) {
	eq, err := condition(e, ins)
	if err != nil {
		return 0, err
	}
	if eq {
		return noJump, nil
	}
	return e.labelTarget(ins.Args[0].Text)
}

// opCall pushes the CALL instruction's own index (not ip+1) onto the
// call stack, so that RETURN's ip+1 lands on the instruction after
// this CALL — the round-trip contract from spec §4.4.
func opCall(e *Engine, ins instr.Instruction) (int, error) {
	target, err := e.labelTarget(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	e.callStack = append(e.callStack, e.ip)
	return target, nil
}

func opReturn(e *Engine, _ instr.Instruction) (int, error) {
	if len(e.callStack) == 0 {
		return 0, ipperr.New(ipperr.MissingValue, "RETURN: call stack is empty")
	}
	ret := e.callStack[len(e.callStack)-1]
	e.callStack = e.callStack[:len(e.callStack)-1]
	return ret + 1, nil
}

func opExit(e *Engine, ins instr.Instruction) (int, error) {
	v, err := instr.ResolveSymb(e.frames, ins.Args[0])
	if err != nil {
		return 0, err
	}
	if v.Kind != value.Int {
		return 0, ipperr.New(ipperr.InvalidOperands, "EXIT requires an int operand, got %s", v.Kind)
	}
	if v.I < 0 || v.I > 49 {
		return 0, ipperr.New(ipperr.InvalidOperandValue, "EXIT code %d out of range [0,49]", v.I)
	}
	e.exitRequested = true
	e.exitCode = int(v.I)
	return noJump, nil
}
