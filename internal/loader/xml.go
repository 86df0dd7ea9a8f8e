package loader

import "encoding/xml"

// xmlProgram, xmlInstruction and xmlArg mirror the on-disk IPPcode23
// document shape closely enough for encoding/xml to do the structural
// parse; everything past "is this well-formed XML with the right
// element/attribute names" is validated by hand in loader.go, since
// the document's semantic rules (arity, order uniqueness, opcode
// membership) have no natural expression as Go struct tags.
type xmlProgram struct {
	XMLName      xml.Name
	Instructions []xmlInstruction `xml:"instruction"`
}

type xmlInstruction struct {
	Order  string  `xml:"order,attr"`
	OpCode string  `xml:"opcode,attr"`
	Arg1   *xmlArg `xml:"arg1"`
	Arg2   *xmlArg `xml:"arg2"`
	Arg3   *xmlArg `xml:"arg3"`
}

type xmlArg struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}
