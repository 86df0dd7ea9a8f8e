package instr

import (
	"strconv"
	"strings"

	"github.com/ipp23/ippcode23/internal/frame"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/value"
)

// ParseVar splits a var argument's text of the form "F@name" into its
// frame prefix and variable name. Malformed text (no "@", or an
// unrecognized frame prefix) is reported with the exit code the
// caller should use depending on which kind of malformedness it is:
// an absent separator is a syntax error (InvalidXMLStructure), while
// an unknown-but-well-formed prefix is InvalidFrame, matching the
// distinction drawn in spec §4.2.
func ParseVar(text string) (frame.Name, string, error) {
	at := strings.IndexByte(text, '@')
	if at < 0 {
		return "", "", ipperr.New(ipperr.InvalidXMLStructure, "malformed variable reference %q", text)
	}
	prefix, name := text[:at], text[at+1:]
	switch frame.Name(prefix) {
	case frame.Global, frame.Local, frame.Temporary:
		return frame.Name(prefix), name, nil
	default:
		return "", "", ipperr.New(ipperr.InvalidFrame, "unknown frame %q", prefix)
	}
}

// DecodeInt parses an int literal with automatic base detection
// (decimal, 0x…, 0o…), matching strconv's base-0 rules.
func DecodeInt(text string) (int64, error) {
	i, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return 0, ipperr.Wrap(ipperr.InvalidXMLStructure, err, "malformed int literal %q", text)
	}
	return i, nil
}

// DecodeBool parses a bool literal under the strict reading chosen
// for this implementation (see spec §9's open question): only the
// exact text "true" or "false" is accepted, anything else is a
// document error rather than silently defaulting to true.
func DecodeBool(text string) (bool, error) {
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, ipperr.New(ipperr.InvalidXMLStructure, "malformed bool literal %q", text)
	}
}

// DecodeString expands \ddd escapes (exactly three decimal digits)
// into the code point of value ddd. Empty text decodes to the empty
// string.
func DecodeString(text string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+3 >= len(text) {
			return "", ipperr.New(ipperr.InvalidXMLStructure, "truncated escape in %q", text)
		}
		digits := text[i+1 : i+4]
		n, err := strconv.Atoi(digits)
		if err != nil || digits[0] < '0' || digits[0] > '9' {
			return "", ipperr.New(ipperr.InvalidXMLStructure, "malformed escape %q in %q", digits, text)
		}
		b.WriteRune(rune(n))
		i += 3
	}
	return b.String(), nil
}

// DecodeNil validates a nil literal's text, which must be exactly
// "nil".
func DecodeNil(text string) error {
	if text != "nil" {
		return ipperr.New(ipperr.InvalidXMLStructure, "malformed nil literal %q", text)
	}
	return nil
}

// DecodeTypeName validates a type argument's text (READ's second
// argument) against the four known type names.
func DecodeTypeName(text string) (value.Kind, error) {
	switch text {
	case "int":
		return value.Int, nil
	case "bool":
		return value.Bool, nil
	case "string":
		return value.Str, nil
	case "nil":
		return value.Nil, nil
	default:
		return 0, ipperr.New(ipperr.InvalidOperands, "unknown type name %q", text)
	}
}

// ResolveSymb decodes a symb argument (arg.Type ∈ {var,int,bool,
// string,nil}) into a concrete Value, resolving var references
// against the live frame holder.
func ResolveSymb(h *frame.Holder, a Arg) (value.Value, error) {
	switch a.Type {
	case "var":
		fr, name, err := ParseVar(a.Text)
		if err != nil {
			return value.Value{}, err
		}
		return h.Get(fr, name)
	case "int":
		i, err := DecodeInt(a.Text)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewInt(i), nil
	case "bool":
		b, err := DecodeBool(a.Text)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(b), nil
	case "string":
		s, err := DecodeString(a.Text)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewStr(s), nil
	case "nil":
		if err := DecodeNil(a.Text); err != nil {
			return value.Value{}, err
		}
		return value.NewNil(), nil
	default:
		return value.Value{}, ipperr.New(ipperr.InvalidXMLStructure, "unknown operand type %q", a.Type)
	}
}
