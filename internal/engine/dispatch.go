package engine

import "github.com/ipp23/ippcode23/internal/instr"

// handlerFunc executes one instruction and returns either noJump (the
// engine falls through to ip+1) or an absolute instruction index to
// jump to next.
type handlerFunc func(*Engine, instr.Instruction) (int, error)

// dispatch is the opcode-to-handler table referenced by Engine.Run,
// following the teacher's wrapper-table pattern (InstructionFunc in
// internal/cpu/opcodes.go) generalized from an 8-bit opcode space to
// this interpreter's 35 mnemonics.
var dispatch = map[instr.OpCode]handlerFunc{
	instr.CREATEFRAME: opCreateFrame,
	instr.PUSHFRAME:   opPushFrame,
	instr.POPFRAME:    opPopFrame,
	instr.DEFVAR:      opDefvar,
	instr.MOVE:        opMove,

	instr.ADD:  opAdd,
	instr.SUB:  opSub,
	instr.MUL:  opMul,
	instr.IDIV: opIdiv,

	instr.LT: opLt,
	instr.GT: opGt,
	instr.EQ: opEq,

	instr.AND: opAnd,
	instr.OR:  opOr,
	instr.NOT: opNot,

	instr.CONCAT:   opConcat,
	instr.STRLEN:   opStrlen,
	instr.GETCHAR:  opGetChar,
	instr.SETCHAR:  opSetChar,
	instr.INT2CHAR: opInt2Char,
	instr.STRI2INT: opStri2Int,

	instr.READ:  opRead,
	instr.WRITE: opWrite,

	instr.PUSHS: opPushs,
	instr.POPS:  opPops,

	instr.LABEL:      opLabel,
	instr.JUMP:       opJump,
	instr.JUMPIFEQ:   opJumpIfEq,
	instr.JUMPIFNEQ:  opJumpIfNeq,
	instr.CALL:       opCall,
	instr.RETURN:     opReturn,
	instr.EXIT:       opExit,

	instr.TYPE: opType,

	instr.DPRINT: opDprint,
	instr.BREAK:  opBreak,
}
