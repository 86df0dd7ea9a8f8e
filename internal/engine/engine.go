// Package engine drives the fetch-decode-execute loop over a loaded
// program: it owns the instruction pointer, frame holder, call and
// data stacks, and the input stream, and is the explicit object every
// instruction's execute method operates on — no global interpreter
// state, per the interpreter's design notes.
package engine

import (
	"github.com/ipp23/ippcode23/internal/frame"
	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/ipplog"
	"github.com/ipp23/ippcode23/internal/loader"
	"github.com/ipp23/ippcode23/internal/value"
)

// Reader is the line-oriented input source READ consumes from.
// Satisfied by internal/ioline.Reader; kept as an interface so tests
// can substitute an in-memory stream without touching a file.
type Reader interface {
	// ReadLine returns the next line with its trailing newline
	// stripped, and ok=false at end of stream.
	ReadLine() (line string, ok bool)
}

// Writer is the destination WRITE renders to.
type Writer interface {
	WriteString(s string) error
}

// noJump is the dispatch sentinel meaning "fall through to ip+1",
// returned by every instruction that isn't a control-flow opcode.
const noJump = -1

// Engine holds all execution state for a single run of a loaded
// program. It is never a package-level singleton; main constructs one
// per invocation.
type Engine struct {
	prog   *loader.Program
	frames *frame.Holder

	callStack []int
	dataStack []value.Value

	ip int

	in  Reader
	out Writer

	instructionCount uint64
	exitRequested    bool
	exitCode         int
}

// New builds an Engine ready to run prog, with a freshly created
// global frame and empty stacks.
func New(prog *loader.Program, in Reader, out Writer) *Engine {
	return &Engine{
		prog:   prog,
		frames: frame.NewHolder(),
		in:     in,
		out:    out,
	}
}

// Run drives the dispatch loop to completion: either the instruction
// pointer runs off the end of the program (a normal exit, code 0), or
// EXIT is executed (exit with its operand), or an instruction reports
// an *ipperr.Error, which Run returns unchanged for the caller to
// translate into a process exit code.
func (e *Engine) Run() (int, error) {
	instructions := e.prog.Instructions
	for e.ip < len(instructions) {
		ins := instructions[e.ip]
		handler, ok := dispatch[ins.Op]
		if !ok {
			// Unreachable: the loader only ever produces instructions
			// whose opcode resolved through instr.LookupOpCode, and
			// every OpCode it can return has an entry in dispatch.go.
			return 0, ipperr.New(ipperr.InvalidXMLStructure, "no handler registered for %s", ins.Op)
		}

		ipplog.Log().WithFields(map[string]any{
			"ip":    e.ip,
			"order": ins.Order,
			"op":    ins.Op.String(),
		}).Debug("execute")

		next, err := handler(e, ins)
		if err != nil {
			return 0, err
		}
		e.instructionCount++

		if e.exitRequested {
			return e.exitCode, nil
		}

		if next == noJump {
			e.ip++
		} else {
			e.ip = next
		}
	}
	return 0, nil
}

// InstructionCount reports how many instructions executed, for
// diagnostics only (no part of the language contract depends on it).
func (e *Engine) InstructionCount() uint64 {
	return e.instructionCount
}

func (e *Engine) labelTarget(name string) (int, error) {
	idx, ok := e.prog.Labels[name]
	if !ok {
		return 0, ipperr.New(ipperr.InvalidSemantics, "undefined label %q", name)
	}
	return idx, nil
}
