package engine

import "github.com/ipp23/ippcode23/internal/instr"

func opCreateFrame(e *Engine, _ instr.Instruction) (int, error) {
	e.frames.CreateFrame()
	return noJump, nil
}

func opPushFrame(e *Engine, _ instr.Instruction) (int, error) {
	if err := e.frames.PushFrame(); err != nil {
		return 0, err
	}
	return noJump, nil
}

func opPopFrame(e *Engine, _ instr.Instruction) (int, error) {
	if err := e.frames.PopFrame(); err != nil {
		return 0, err
	}
	return noJump, nil
}

func opDefvar(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	if err := e.frames.Declare(fr, name); err != nil {
		return 0, err
	}
	return noJump, nil
}

func opMove(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	v, err := instr.ResolveSymb(e.frames, ins.Args[1])
	if err != nil {
		return 0, err
	}
	if err := e.frames.Set(fr, name, v); err != nil {
		return 0, err
	}
	return noJump, nil
}
