// Package ipperr defines the exit-code-carrying error taxonomy used
// across the loader and execution engine. Every detected violation
// maps to exactly one Kind, and every Kind maps to exactly one
// process exit code, so the CLI never has to pattern-match error
// strings to decide how to terminate.
package ipperr

import (
	"errors"
	"fmt"
)

// Kind identifies a class of interpreter failure. The numeric values
// are not the exit codes themselves (see ExitCode) so that the
// taxonomy can be reordered without disturbing the contract.
type Kind int

const (
	// MissingArguments: neither --source nor --input was given.
	MissingArguments Kind = iota
	// InvalidFile: the source or input file could not be opened.
	InvalidFile
	// InvalidXMLFormat: the document is not well-formed XML.
	InvalidXMLFormat
	// InvalidXMLStructure: well-formed XML that violates the IPPcode23
	// document shape (unknown/duplicate order, bad arity, unknown
	// opcode, malformed operand syntax).
	InvalidXMLStructure
	// InvalidSemantics: duplicate label, undefined label, DEFVAR
	// redefinition.
	InvalidSemantics
	// InvalidOperands: operand type mismatch.
	InvalidOperands
	// InvalidVariable: access to an undefined variable name.
	InvalidVariable
	// InvalidFrame: access to a missing or undefined frame.
	InvalidFrame
	// MissingValue: unset variable read, RETURN with an empty call
	// stack, POPS with an empty data stack.
	MissingValue
	// InvalidOperandValue: division by zero, EXIT code outside [0,49].
	InvalidOperandValue
	// InvalidStringOperation: out-of-range string index, INT2CHAR on
	// an invalid code point.
	InvalidStringOperation
)

var exitCodes = map[Kind]int{
	MissingArguments:       10,
	InvalidFile:            11,
	InvalidXMLFormat:       31,
	InvalidXMLStructure:    32,
	InvalidSemantics:       52,
	InvalidOperands:        53,
	InvalidVariable:        54,
	InvalidFrame:           55,
	MissingValue:           56,
	InvalidOperandValue:    57,
	InvalidStringOperation: 58,
}

var names = map[Kind]string{
	MissingArguments:       "missing arguments",
	InvalidFile:            "invalid file",
	InvalidXMLFormat:       "invalid xml format",
	InvalidXMLStructure:    "invalid xml structure",
	InvalidSemantics:       "invalid semantics",
	InvalidOperands:        "invalid operands",
	InvalidVariable:        "invalid variable",
	InvalidFrame:           "invalid frame",
	MissingValue:           "missing value",
	InvalidOperandValue:    "invalid operand value",
	InvalidStringOperation: "invalid string operation",
}

// ExitCode returns the process exit code for k. An unrecognized Kind
// is a defect in the interpreter itself, not a program under
// interpretation, so it is reported loudly rather than silently
// mapped to 0.
func (k Kind) ExitCode() int {
	code, ok := exitCodes[k]
	if !ok {
		panic(fmt.Sprintf("ipperr: unregistered error kind %d", int(k)))
	}
	return code
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type that flows out of the loader and
// engine. It never loses the Kind that determines the exit code,
// even after being wrapped by fmt.Errorf("...: %w", err) further up
// the call stack.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a *Error with a formatted message and no wrapped cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a *Error that carries an underlying cause, preserving
// kind for the exit-code lookup while keeping the original error
// available through errors.Unwrap.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error.
// Callers that must terminate with a fixed exit code use this as the
// single recovery point at the top of main.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
