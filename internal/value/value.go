// Package value implements the IPPcode23 tagged value: the total
// equality and partial ordering relations over Int, Bool, Str, Nil
// and Undefined live here, away from frame storage and instruction
// dispatch.
package value

import (
	"fmt"
	"strings"

	"github.com/ipp23/ippcode23/internal/ipperr"
)

// Kind tags the variant a Value holds.
type Kind uint8

const (
	// Undefined is the sentinel occupying a declared-but-unassigned
	// variable slot. It is never a legal operand except to TYPE.
	Undefined Kind = iota
	Nil
	Bool
	Int
	Str
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return ""
	case Nil:
		return "nil"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Str:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the tagged union every frame slot, stack entry and
// instruction operand resolves to.
type Value struct {
	Kind Kind
	I    int64
	B    bool
	S    string
}

func NewInt(i int64) Value { return Value{Kind: Int, I: i} }
func NewBool(b bool) Value { return Value{Kind: Bool, B: b} }
func NewStr(s string) Value { return Value{Kind: Str, S: s} }
func NewNil() Value { return Value{Kind: Nil} }
func NewUndefined() Value { return Value{Kind: Undefined} }

// TypeName implements the TYPE instruction's reporting rule: the
// empty string for Undefined, the tag name otherwise.
func (v Value) TypeName() string {
	return v.Kind.String()
}

// Display renders v the way WRITE does: Nil as "", Bool as lowercase
// true/false, Int in base 10, Str verbatim. Display must never be
// called on Undefined — callers read through Frame.Get first, which
// already turns that case into MissingValue.
func (v Value) Display() string {
	switch v.Kind {
	case Nil:
		return ""
	case Bool:
		if v.B {
			return "true"
		}
		return "false"
	case Int:
		return fmt.Sprintf("%d", v.I)
	case Str:
		return v.S
	default:
		panic("value: Display called on Undefined")
	}
}

// Equal implements the equality relation from spec §3: same-tagged
// values compare by content, Nil compares equal only to Nil, and any
// other cross-tag comparison is an operand error.
func Equal(a, b Value) (bool, error) {
	if a.Kind == Nil || b.Kind == Nil {
		return a.Kind == Nil && b.Kind == Nil, nil
	}
	if a.Kind != b.Kind {
		return false, ipperr.New(ipperr.InvalidOperands,
			"cannot compare %s and %s for equality", a.Kind, b.Kind)
	}
	switch a.Kind {
	case Bool:
		return a.B == b.B, nil
	case Int:
		return a.I == b.I, nil
	case Str:
		return a.S == b.S, nil
	default:
		return false, ipperr.New(ipperr.InvalidOperands,
			"%s is not a comparable value", a.Kind)
	}
}

// Less implements "<" / ">" ordering: defined only for two same-kind
// non-nil values. Bool orders false < true; Str orders by code-point
// lexicographic order (Go's native string comparison already does
// this for valid UTF-8).
func Less(a, b Value) (bool, error) {
	if err := checkOrderable(a, b); err != nil {
		return false, err
	}
	switch a.Kind {
	case Bool:
		return !a.B && b.B, nil
	case Int:
		return a.I < b.I, nil
	case Str:
		return strings.Compare(a.S, b.S) < 0, nil
	default:
		return false, ipperr.New(ipperr.InvalidOperands,
			"%s does not support ordering", a.Kind)
	}
}

func checkOrderable(a, b Value) error {
	if a.Kind == Nil || b.Kind == Nil {
		return ipperr.New(ipperr.InvalidOperands, "nil does not support ordering")
	}
	if a.Kind != b.Kind {
		return ipperr.New(ipperr.InvalidOperands,
			"cannot order %s against %s", a.Kind, b.Kind)
	}
	return nil
}
