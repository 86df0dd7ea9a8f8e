package engine

import (
	"strings"

	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/value"
)

// opRead implements READ var type: one line from the configured input
// stream, end-of-stream yields Nil, a line that doesn't parse as an
// int yields Nil rather than failing the run, and a bool read is true
// only for a case-insensitive "true" (false for any other line) —
// only `nil` as the requested type itself is rejected, since there is
// no such thing as reading "a nil".
func opRead(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	wantKind, err := instr.DecodeTypeName(ins.Args[1].Text)
	if err != nil {
		return 0, err
	}
	if wantKind == value.Nil {
		return 0, ipperr.New(ipperr.InvalidOperands, "READ cannot target type nil")
	}

	line, ok := e.in.ReadLine()

	var result value.Value
	switch {
	case !ok:
		result = value.NewNil()
	case wantKind == value.Int:
		i, perr := instr.DecodeInt(line)
		if perr != nil {
			result = value.NewNil()
		} else {
			result = value.NewInt(i)
		}
	case wantKind == value.Bool:
		result = value.NewBool(strings.EqualFold(line, "true"))
	default: // value.Str
		result = value.NewStr(line)
	}

	if err := e.frames.Set(fr, name, result); err != nil {
		return 0, err
	}
	return noJump, nil
}

func opWrite(e *Engine, ins instr.Instruction) (int, error) {
	v, err := instr.ResolveSymb(e.frames, ins.Args[0])
	if err != nil {
		return 0, err
	}
	if err := e.out.WriteString(v.Display()); err != nil {
		return 0, ipperr.Wrap(ipperr.InvalidFile, err, "WRITE failed")
	}
	return noJump, nil
}
