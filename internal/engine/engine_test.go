package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/loader"
)

// fakeReader feeds a fixed sequence of lines to READ, reporting
// end-of-stream once exhausted.
type fakeReader struct {
	lines []string
	pos   int
}

func (r *fakeReader) ReadLine() (string, bool) {
	if r.pos >= len(r.lines) {
		return "", false
	}
	line := r.lines[r.pos]
	r.pos++
	return line, true
}

// fakeWriter records every WRITE call for assertion.
type fakeWriter struct {
	out string
}

func (w *fakeWriter) WriteString(s string) error {
	w.out += s
	return nil
}

func arg(typ, text string) instr.Arg { return instr.Arg{Type: typ, Text: text} }

func newTestEngine(instructions []instr.Instruction, labels map[string]int, in []string) (*Engine, *fakeWriter) {
	if labels == nil {
		labels = map[string]int{}
	}
	prog := &loader.Program{Instructions: instructions, Labels: labels}
	out := &fakeWriter{}
	return New(prog, &fakeReader{lines: in}, out), out
}

func TestRunHelloWorld(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.WRITE, Order: 1, Args: []instr.Arg{arg("string", "Hello, world!")}},
	}
	e, out := newTestEngine(instructions, nil, nil)
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Hello, world!", out.out)
}

func TestArithmeticAndIdiv(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.DEFVAR, Order: 1, Args: []instr.Arg{arg("var", "GF@r")}},
		{Op: instr.IDIV, Order: 2, Args: []instr.Arg{
			arg("var", "GF@r"), arg("int", "-7"), arg("int", "2"),
		}},
		{Op: instr.WRITE, Order: 3, Args: []instr.Arg{arg("var", "GF@r")}},
	}
	e, out := newTestEngine(instructions, nil, nil)
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "-4", out.out, "floor division: -7 idiv 2 == -4")
}

func TestIdivByZeroExitsWithOperandValueError(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.DEFVAR, Order: 1, Args: []instr.Arg{arg("var", "GF@r")}},
		{Op: instr.IDIV, Order: 2, Args: []instr.Arg{
			arg("var", "GF@r"), arg("int", "1"), arg("int", "0"),
		}},
	}
	e, _ := newTestEngine(instructions, nil, nil)
	_, err := e.Run()
	require.Error(t, err)
	kind, ok := ipperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ipperr.InvalidOperandValue, kind)
	assert.Equal(t, 57, kind.ExitCode())
}

func TestReadingUndefinedVariableIsMissingValue(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.DEFVAR, Order: 1, Args: []instr.Arg{arg("var", "GF@x")}},
		{Op: instr.DEFVAR, Order: 2, Args: []instr.Arg{arg("var", "GF@y")}},
		{Op: instr.MOVE, Order: 3, Args: []instr.Arg{arg("var", "GF@y"), arg("var", "GF@x")}},
	}
	e, _ := newTestEngine(instructions, nil, nil)
	_, err := e.Run()
	require.Error(t, err)
	kind, ok := ipperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ipperr.MissingValue, kind)
	assert.Equal(t, 56, kind.ExitCode())
}

func TestAccessingUndeclaredVariableIsInvalidVariable(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.WRITE, Order: 1, Args: []instr.Arg{arg("var", "GF@nope")}},
	}
	e, _ := newTestEngine(instructions, nil, nil)
	_, err := e.Run()
	require.Error(t, err)
	kind, ok := ipperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ipperr.InvalidVariable, kind)
	assert.Equal(t, 54, kind.ExitCode())
}

// TestCallReturnSequencing builds:
//
//	1  CALL  b
//	2  WRITE "A"     <- RETURN must land here, not on instruction 1
//	3  EXIT  0       <- halts main flow before falling into b's body
//	4  LABEL b
//	5  WRITE "B"
//	6  RETURN
//
// and expects output "BA": the call jumps straight to b's body,
// RETURN resumes right after the CALL, not at the instruction the
// CALL itself occupied.
func TestCallReturnSequencing(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.CALL, Order: 1, Args: []instr.Arg{arg("label", "b")}},
		{Op: instr.WRITE, Order: 2, Args: []instr.Arg{arg("string", "A")}},
		{Op: instr.EXIT, Order: 3, Args: []instr.Arg{arg("int", "0")}},
		{Op: instr.LABEL, Order: 4, Args: []instr.Arg{arg("label", "b")}},
		{Op: instr.WRITE, Order: 5, Args: []instr.Arg{arg("string", "B")}},
		{Op: instr.RETURN, Order: 6},
	}
	labels := map[string]int{"b": 3}
	e, out := newTestEngine(instructions, labels, nil)
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "BA", out.out)
}

func TestReadIntFailureYieldsNilThenType(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.DEFVAR, Order: 1, Args: []instr.Arg{arg("var", "GF@v")}},
		{Op: instr.DEFVAR, Order: 2, Args: []instr.Arg{arg("var", "GF@t")}},
		{Op: instr.READ, Order: 3, Args: []instr.Arg{arg("var", "GF@v"), arg("type", "int")}},
		{Op: instr.TYPE, Order: 4, Args: []instr.Arg{arg("var", "GF@t"), arg("var", "GF@v")}},
		{Op: instr.WRITE, Order: 5, Args: []instr.Arg{arg("var", "GF@t")}},
	}
	e, out := newTestEngine(instructions, nil, []string{"not-an-int"})
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "nil", out.out, "a non-numeric line read as int yields a Nil value")
}

func TestExitSetsExitCode(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.EXIT, Order: 1, Args: []instr.Arg{arg("int", "7")}},
		{Op: instr.WRITE, Order: 2, Args: []instr.Arg{arg("string", "unreachable")}},
	}
	e, out := newTestEngine(instructions, nil, nil)
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 7, code)
	assert.Empty(t, out.out, "EXIT must halt before the next instruction runs")
}

func TestExitOutOfRangeIsOperandValueError(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.EXIT, Order: 1, Args: []instr.Arg{arg("int", "50")}},
	}
	e, _ := newTestEngine(instructions, nil, nil)
	_, err := e.Run()
	require.Error(t, err)
	kind, _ := ipperr.KindOf(err)
	assert.Equal(t, ipperr.InvalidOperandValue, kind)
}

func TestExitNonIntIsInvalidOperands(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.EXIT, Order: 1, Args: []instr.Arg{arg("string", "x")}},
	}
	e, _ := newTestEngine(instructions, nil, nil)
	_, err := e.Run()
	require.Error(t, err)
	kind, ok := ipperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ipperr.InvalidOperands, kind, "a non-int EXIT operand is a type mismatch, not a value out of range")
	assert.Equal(t, 53, kind.ExitCode())
}

func TestJumpIfEqSkipsAndFallsThrough(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.JUMPIFEQ, Order: 1, Args: []instr.Arg{
			arg("label", "end"), arg("int", "1"), arg("int", "1"),
		}},
		{Op: instr.WRITE, Order: 2, Args: []instr.Arg{arg("string", "skipped")}},
		{Op: instr.LABEL, Order: 3, Args: []instr.Arg{arg("label", "end")}},
		{Op: instr.WRITE, Order: 4, Args: []instr.Arg{arg("string", "end")}},
	}
	labels := map[string]int{"end": 2}
	e, out := newTestEngine(instructions, labels, nil)
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "end", out.out)
}

func TestStackPushAndPop(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.DEFVAR, Order: 1, Args: []instr.Arg{arg("var", "GF@x")}},
		{Op: instr.PUSHS, Order: 2, Args: []instr.Arg{arg("int", "9")}},
		{Op: instr.POPS, Order: 3, Args: []instr.Arg{arg("var", "GF@x")}},
		{Op: instr.WRITE, Order: 4, Args: []instr.Arg{arg("var", "GF@x")}},
	}
	e, out := newTestEngine(instructions, nil, nil)
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "9", out.out)
}

func TestPopsOnEmptyStackIsMissingValue(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.DEFVAR, Order: 1, Args: []instr.Arg{arg("var", "GF@x")}},
		{Op: instr.POPS, Order: 2, Args: []instr.Arg{arg("var", "GF@x")}},
	}
	e, _ := newTestEngine(instructions, nil, nil)
	_, err := e.Run()
	require.Error(t, err)
	kind, _ := ipperr.KindOf(err)
	assert.Equal(t, ipperr.MissingValue, kind)
}

func TestStringOperations(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.DEFVAR, Order: 1, Args: []instr.Arg{arg("var", "GF@s")}},
		{Op: instr.CONCAT, Order: 2, Args: []instr.Arg{
			arg("var", "GF@s"), arg("string", "foo"), arg("string", "bar"),
		}},
		{Op: instr.DEFVAR, Order: 3, Args: []instr.Arg{arg("var", "GF@n")}},
		{Op: instr.STRLEN, Order: 4, Args: []instr.Arg{arg("var", "GF@n"), arg("var", "GF@s")}},
		{Op: instr.WRITE, Order: 5, Args: []instr.Arg{arg("var", "GF@n")}},
	}
	e, out := newTestEngine(instructions, nil, nil)
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "6", out.out)
}

func TestGetCharOutOfRangeIsStringOperationError(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.DEFVAR, Order: 1, Args: []instr.Arg{arg("var", "GF@c")}},
		{Op: instr.GETCHAR, Order: 2, Args: []instr.Arg{
			arg("var", "GF@c"), arg("string", "hi"), arg("int", "9"),
		}},
	}
	e, _ := newTestEngine(instructions, nil, nil)
	_, err := e.Run()
	require.Error(t, err)
	kind, _ := ipperr.KindOf(err)
	assert.Equal(t, ipperr.InvalidStringOperation, kind)
	assert.Equal(t, 58, kind.ExitCode())
}

func TestTypeOnUndefinedVariableYieldsEmptyString(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.DEFVAR, Order: 1, Args: []instr.Arg{arg("var", "GF@x")}},
		{Op: instr.DEFVAR, Order: 2, Args: []instr.Arg{arg("var", "GF@t")}},
		{Op: instr.TYPE, Order: 3, Args: []instr.Arg{arg("var", "GF@t"), arg("var", "GF@x")}},
		{Op: instr.WRITE, Order: 4, Args: []instr.Arg{arg("var", "GF@t")}},
	}
	e, out := newTestEngine(instructions, nil, nil)
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "", out.out)
}

func TestFrameLifecycleThroughEngine(t *testing.T) {
	instructions := []instr.Instruction{
		{Op: instr.CREATEFRAME, Order: 1},
		{Op: instr.DEFVAR, Order: 2, Args: []instr.Arg{arg("var", "TF@x")}},
		{Op: instr.MOVE, Order: 3, Args: []instr.Arg{arg("var", "TF@x"), arg("int", "3")}},
		{Op: instr.PUSHFRAME, Order: 4},
		{Op: instr.WRITE, Order: 5, Args: []instr.Arg{arg("var", "LF@x")}},
		{Op: instr.POPFRAME, Order: 6},
		{Op: instr.WRITE, Order: 7, Args: []instr.Arg{arg("var", "TF@x")}},
	}
	e, out := newTestEngine(instructions, nil, nil)
	code, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "33", out.out)
}
