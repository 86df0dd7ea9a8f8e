package engine

import (
	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/value"
)

// opType implements TYPE's relaxed read rule: the source variable
// must exist, but its slot may be Undefined — in which case the
// answer is the empty string rather than a MissingValue error.
func opType(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}

	src := ins.Args[1]
	var typeName string
	if src.Type == "var" {
		sfr, sname, err := instr.ParseVar(src.Text)
		if err != nil {
			return 0, err
		}
		v, err := e.frames.GetForType(sfr, sname)
		if err != nil {
			return 0, err
		}
		typeName = v.TypeName()
	} else {
		v, err := instr.ResolveSymb(e.frames, src)
		if err != nil {
			return 0, err
		}
		typeName = v.TypeName()
	}

	if err := e.frames.Set(fr, name, value.NewStr(typeName)); err != nil {
		return 0, err
	}
	return noJump, nil
}
