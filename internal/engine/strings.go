package engine

import (
	"unicode/utf8"

	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/value"
)

func opConcat(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	a, b, err := resolveBinary(e, ins)
	if err != nil {
		return 0, err
	}
	if a.Kind != value.Str || b.Kind != value.Str {
		return 0, ipperr.New(ipperr.InvalidOperands, "CONCAT requires two string operands, got %s and %s", a.Kind, b.Kind)
	}
	if err := e.frames.Set(fr, name, value.NewStr(a.S+b.S)); err != nil {
		return 0, err
	}
	return noJump, nil
}

func opStrlen(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	s, err := instr.ResolveSymb(e.frames, ins.Args[1])
	if err != nil {
		return 0, err
	}
	if s.Kind != value.Str {
		return 0, ipperr.New(ipperr.InvalidOperands, "STRLEN requires a string operand, got %s", s.Kind)
	}
	if err := e.frames.Set(fr, name, value.NewInt(int64(utf8.RuneCountInString(s.S)))); err != nil {
		return 0, err
	}
	return noJump, nil
}

// runeAt returns the code point at index i in s (by code-point
// position, not byte offset) and the total code-point count.
func runeAt(s string, i int64) (rune, int, bool) {
	runes := []rune(s)
	if i < 0 || i >= int64(len(runes)) {
		return 0, len(runes), false
	}
	return runes[i], len(runes), true
}

func opGetChar(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	s, idx, err := resolveBinary(e, ins)
	if err != nil {
		return 0, err
	}
	if s.Kind != value.Str || idx.Kind != value.Int {
		return 0, ipperr.New(ipperr.InvalidOperands, "GETCHAR requires (string, int) operands, got %s and %s", s.Kind, idx.Kind)
	}
	r, _, ok := runeAt(s.S, idx.I)
	if !ok {
		return 0, ipperr.New(ipperr.InvalidStringOperation, "GETCHAR index %d out of range", idx.I)
	}
	if err := e.frames.Set(fr, name, value.NewStr(string(r))); err != nil {
		return 0, err
	}
	return noJump, nil
}

// opSetChar writes one character of a PUSHS/MOVE-style string
// argument in place: dst names the variable whose current value is
// mutated, not just read.
func opSetChar(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	current, err := e.frames.Get(fr, name)
	if err != nil {
		return 0, err
	}
	idxVal, srcVal, err := resolveBinary(e, ins)
	if err != nil {
		return 0, err
	}
	if current.Kind != value.Str || idxVal.Kind != value.Int || srcVal.Kind != value.Str {
		return 0, ipperr.New(ipperr.InvalidOperands, "SETCHAR requires (string, int, string) operands")
	}
	if srcVal.S == "" {
		return 0, ipperr.New(ipperr.InvalidStringOperation, "SETCHAR source string is empty")
	}
	runes := []rune(current.S)
	if idxVal.I < 0 || idxVal.I >= int64(len(runes)) {
		return 0, ipperr.New(ipperr.InvalidStringOperation, "SETCHAR index %d out of range", idxVal.I)
	}
	replacement, _ := utf8.DecodeRuneInString(srcVal.S)
	runes[idxVal.I] = replacement
	if err := e.frames.Set(fr, name, value.NewStr(string(runes))); err != nil {
		return 0, err
	}
	return noJump, nil
}

func opInt2Char(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	i, err := instr.ResolveSymb(e.frames, ins.Args[1])
	if err != nil {
		return 0, err
	}
	if i.Kind != value.Int {
		return 0, ipperr.New(ipperr.InvalidOperands, "INT2CHAR requires an int operand, got %s", i.Kind)
	}
	if i.I < 0 || i.I > utf8.MaxRune || !utf8.ValidRune(rune(i.I)) {
		return 0, ipperr.New(ipperr.InvalidStringOperation, "INT2CHAR: %d is not a valid code point", i.I)
	}
	if err := e.frames.Set(fr, name, value.NewStr(string(rune(i.I)))); err != nil {
		return 0, err
	}
	return noJump, nil
}

func opStri2Int(e *Engine, ins instr.Instruction) (int, error) {
	fr, name, err := instr.ParseVar(ins.Args[0].Text)
	if err != nil {
		return 0, err
	}
	s, idx, err := resolveBinary(e, ins)
	if err != nil {
		return 0, err
	}
	if s.Kind != value.Str || idx.Kind != value.Int {
		return 0, ipperr.New(ipperr.InvalidOperands, "STRI2INT requires (string, int) operands, got %s and %s", s.Kind, idx.Kind)
	}
	r, _, ok := runeAt(s.S, idx.I)
	if !ok {
		return 0, ipperr.New(ipperr.InvalidStringOperation, "STRI2INT index %d out of range", idx.I)
	}
	if err := e.frames.Set(fr, name, value.NewInt(int64(r))); err != nil {
		return 0, err
	}
	return noJump, nil
}
