package engine

import (
	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipplog"
)

// opDprint and opBreak are no-ops with respect to the program's own
// output stream — they only ever reach the diagnostic logger, never
// the stream WRITE uses, matching spec §4.3's note that both are
// observable only via debug output.
func opDprint(e *Engine, ins instr.Instruction) (int, error) {
	v, err := instr.ResolveSymb(e.frames, ins.Args[0])
	if err != nil {
		return 0, err
	}
	ipplog.Log().WithField("value", v.Display()).Debug("DPRINT")
	return noJump, nil
}

func opBreak(e *Engine, _ instr.Instruction) (int, error) {
	ipplog.Log().WithFields(map[string]any{
		"ip":           e.ip,
		"instructions": e.instructionCount,
		"callStack":    len(e.callStack),
		"dataStack":    len(e.dataStack),
	}).Debug("BREAK")
	return noJump, nil
}
