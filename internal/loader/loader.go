// Package loader turns an IPPcode23 XML document into a linear,
// order-sorted instruction sequence plus a label table, validating
// document structure (arity, known opcodes, unique positive order
// attributes) along the way. It never executes anything.
package loader

import (
	"encoding/xml"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/ipp23/ippcode23/internal/instr"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/ipplog"
)

// Program is the output of a successful load: the instructions in
// execution order and a label name to instruction-index table built
// from them.
type Program struct {
	Instructions []instr.Instruction
	Labels       map[string]int
}

// LoadFile reads and loads path, or standard input when path is the
// empty string (the caller resolves --source defaulting beforehand,
// in internal/config).
func LoadFile(path string) (*Program, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Load(r)
}

func open(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ipperr.Wrap(ipperr.InvalidFile, err, "cannot open source file %q", path)
	}
	return f, nil
}

// Load parses r as an IPPcode23 document and validates it into a
// Program. Failure to parse as XML is InvalidXMLFormat; any
// structural violation (arity, ordering, unknown opcode) is
// InvalidXMLStructure; a duplicate label is InvalidSemantics — the
// precedence spec.md §7 requires (malformed XML before structural
// before semantic).
func Load(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ipperr.Wrap(ipperr.InvalidFile, err, "cannot read source")
	}

	var doc xmlProgram
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, ipperr.Wrap(ipperr.InvalidXMLFormat, err, "malformed xml document")
	}

	ordered, err := orderInstructions(doc.Instructions)
	if err != nil {
		return nil, err
	}

	instructions := make([]instr.Instruction, 0, len(ordered))
	for _, oi := range ordered {
		ins, err := decodeInstruction(oi.xmlInstruction)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, ins)
	}

	labels, err := buildLabelTable(instructions)
	if err != nil {
		return nil, err
	}

	ipplog.Log().WithFields(map[string]any{
		"instructions": len(instructions),
		"labels":       len(labels),
	}).Debug("program loaded")

	return &Program{Instructions: instructions, Labels: labels}, nil
}

type orderedInstruction struct {
	xmlInstruction
	order int
}

// orderInstructions validates each instruction's order attribute,
// rejects duplicates, and returns the instructions sorted ascending
// by order — the loader's one-pass structural validation plus the
// sort that turns document order into execution order.
func orderInstructions(raw []xmlInstruction) ([]orderedInstruction, error) {
	seen := make(map[int]bool, len(raw))
	ordered := make([]orderedInstruction, 0, len(raw))
	for _, ri := range raw {
		n, err := strconv.Atoi(ri.Order)
		if err != nil || n <= 0 {
			return nil, ipperr.New(ipperr.InvalidXMLStructure, "instruction order %q is not a positive integer", ri.Order)
		}
		if seen[n] {
			return nil, ipperr.New(ipperr.InvalidXMLStructure, "duplicate instruction order %d", n)
		}
		seen[n] = true
		ordered = append(ordered, orderedInstruction{xmlInstruction: ri, order: n})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].order < ordered[j].order })
	return ordered, nil
}

// decodeInstruction resolves the opcode mnemonic and checks arity; it
// does not interpret argument text beyond carrying it forward, since
// symb/var/type/label decoding is deferred to execution (spec §4.2).
func decodeInstruction(ri xmlInstruction) (instr.Instruction, error) {
	op, ok := instr.LookupOpCode(ri.OpCode)
	if !ok {
		return instr.Instruction{}, ipperr.New(ipperr.InvalidXMLStructure, "unknown opcode %q", ri.OpCode)
	}

	want := instr.Arity[op]
	args := make([]instr.Arg, 0, want)
	slots := []*xmlArg{ri.Arg1, ri.Arg2, ri.Arg3}
	for i, slot := range slots {
		present := slot != nil
		shouldBePresent := i < want
		if present != shouldBePresent {
			return instr.Instruction{}, ipperr.New(ipperr.InvalidXMLStructure,
				"%s expects %d argument(s), got mismatched arg%d", op, want, i+1)
		}
		if present {
			args = append(args, instr.Arg{Type: slot.Type, Text: slot.Text})
		}
	}

	return instr.Instruction{Op: op, Order: mustOrder(ri), Args: args}, nil
}

func mustOrder(ri xmlInstruction) int {
	n, _ := strconv.Atoi(ri.Order)
	return n
}

// buildLabelTable is the loader's second pass: scan the ordered
// instruction sequence for LABEL opcodes and index each by its
// position, rejecting duplicate definitions. Branches to an unknown
// label are not a loader concern — they fail InvalidSemantics lazily,
// the first time the engine actually takes that branch.
func buildLabelTable(instructions []instr.Instruction) (map[string]int, error) {
	labels := make(map[string]int)
	for i, ins := range instructions {
		if ins.Op != instr.LABEL {
			continue
		}
		name := ins.Label()
		if _, dup := labels[name]; dup {
			return nil, ipperr.New(ipperr.InvalidSemantics, "duplicate label %q", name)
		}
		labels[name] = i
	}
	return labels, nil
}
