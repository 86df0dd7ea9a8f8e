// Package frame implements the IPPcode23 variable storage model: a
// single global frame, an optional temporary frame, and a stack of
// local frames, each a mapping from variable name to Value.
package frame

import (
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/value"
)

// Name identifies which of GF/LF/TF a variable reference addresses.
type Name string

const (
	Global    Name = "GF"
	Local     Name = "LF"
	Temporary Name = "TF"
)

// Frame is a Go map from variable name to Value; it does not keep the
// order in which names were declared. Declaring
// a slot with DEFVAR creates it holding value.Undefined; reading it
// before assignment is a MissingValue error, and reading a name that
// was never declared is an InvalidVariable error.
type Frame map[string]value.Value

func newFrame() Frame {
	return make(Frame)
}

// declare creates name holding Undefined. Redefining an existing name
// is the caller's responsibility to reject (Holder.Declare does so
// with an InvalidSemantics error before calling this).
func (f Frame) declare(name string) {
	f[name] = value.NewUndefined()
}

func (f Frame) get(name string) (value.Value, error) {
	v, ok := f[name]
	if !ok {
		return value.Value{}, ipperr.New(ipperr.InvalidVariable, "undefined variable %q", name)
	}
	if v.Kind == value.Undefined {
		return value.Value{}, ipperr.New(ipperr.MissingValue, "variable %q has no value", name)
	}
	return v, nil
}

// getAllowUndefined is the TYPE instruction's relaxed read: the name
// must exist, but an Undefined slot is a legal answer (rendered as
// the empty string by value.Value.TypeName) rather than MissingValue.
func (f Frame) getAllowUndefined(name string) (value.Value, error) {
	v, ok := f[name]
	if !ok {
		return value.Value{}, ipperr.New(ipperr.InvalidVariable, "undefined variable %q", name)
	}
	return v, nil
}

func (f Frame) set(name string, v value.Value) error {
	if _, ok := f[name]; !ok {
		return ipperr.New(ipperr.InvalidVariable, "undefined variable %q", name)
	}
	f[name] = v
	return nil
}

func (f Frame) has(name string) bool {
	_, ok := f[name]
	return ok
}

// Holder owns the three frame storage areas an engine needs: the
// single global frame created at startup, the optional temporary
// frame toggled by CREATEFRAME/PUSHFRAME/POPFRAME, and the stack of
// pushed local frames that LF addressing always targets at the top.
type Holder struct {
	gf Frame
	tf Frame // nil when no CREATEFRAME has run (or after PUSHFRAME)
	ls []Frame
}

// NewHolder builds a holder with a fresh, empty global frame and no
// temporary or local frames — the state an engine starts execution
// in.
func NewHolder() *Holder {
	return &Holder{gf: newFrame()}
}

// CreateFrame installs a fresh, empty temporary frame, discarding any
// previous one.
func (h *Holder) CreateFrame() {
	h.tf = newFrame()
}

// PushFrame moves the current temporary frame onto the local-frame
// stack and clears TF. An absent TF is InvalidFrame.
func (h *Holder) PushFrame() error {
	if h.tf == nil {
		return ipperr.New(ipperr.InvalidFrame, "PUSHFRAME: no temporary frame")
	}
	h.ls = append(h.ls, h.tf)
	h.tf = nil
	return nil
}

// PopFrame pops the top local frame into TF. An empty local-frame
// stack is InvalidFrame.
func (h *Holder) PopFrame() error {
	if len(h.ls) == 0 {
		return ipperr.New(ipperr.InvalidFrame, "POPFRAME: local frame stack is empty")
	}
	top := h.ls[len(h.ls)-1]
	h.ls = h.ls[:len(h.ls)-1]
	h.tf = top
	return nil
}

func (h *Holder) resolve(fr Name) (Frame, error) {
	switch fr {
	case Global:
		return h.gf, nil
	case Temporary:
		if h.tf == nil {
			return nil, ipperr.New(ipperr.InvalidFrame, "temporary frame does not exist")
		}
		return h.tf, nil
	case Local:
		if len(h.ls) == 0 {
			return nil, ipperr.New(ipperr.InvalidFrame, "local frame stack is empty")
		}
		return h.ls[len(h.ls)-1], nil
	default:
		return nil, ipperr.New(ipperr.InvalidXMLStructure, "unknown frame prefix %q", fr)
	}
}

// Declare implements DEFVAR: creates name in the given frame holding
// Undefined. Redefining an already-declared name is InvalidSemantics.
func (h *Holder) Declare(fr Name, name string) error {
	f, err := h.resolve(fr)
	if err != nil {
		return err
	}
	if f.has(name) {
		return ipperr.New(ipperr.InvalidSemantics, "variable %s@%s already defined", fr, name)
	}
	f.declare(name)
	return nil
}

// Get reads name from the given frame, applying the standard
// Undefined-is-an-error rule.
func (h *Holder) Get(fr Name, name string) (value.Value, error) {
	f, err := h.resolve(fr)
	if err != nil {
		return value.Value{}, err
	}
	return f.get(name)
}

// GetForType reads name from the given frame for TYPE, where an
// Undefined slot is a legal (if unhelpful) answer.
func (h *Holder) GetForType(fr Name, name string) (value.Value, error) {
	f, err := h.resolve(fr)
	if err != nil {
		return value.Value{}, err
	}
	return f.getAllowUndefined(name)
}

// Set implements MOVE, POPS, SETCHAR and every other write target:
// the slot must already exist.
func (h *Holder) Set(fr Name, name string, v value.Value) error {
	f, err := h.resolve(fr)
	if err != nil {
		return err
	}
	return f.set(name, v)
}
