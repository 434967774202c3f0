// Package ast defines the parsed representation of a TuskTsk document:
// an ordered list of sections, each holding ordered key/value entries.
// Embedded function bodies and @operator calls are carried as opaque
// source text for an external evaluator; this tree never executes them.
package ast

import (
	"time"

	"tusktsk/internal/source"
)

// Document is the root node. An empty document has zero sections.
type Document struct {
	Sections []Section
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Sections: make([]Section, 0)}
}

// Empty reports whether the document has no sections.
func (d *Document) Empty() bool {
	return d == nil || len(d.Sections) == 0
}

// Section returns the first section with the given name.
func (d *Document) Section(name string) (*Section, bool) {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i], true
		}
	}
	return nil, false
}

// Clone deep-copies the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return NewDocument()
	}
	out := &Document{Sections: make([]Section, len(d.Sections))}
	for i := range d.Sections {
		out.Sections[i] = d.Sections[i].clone()
	}
	return out
}

// Section is a named group of assignments.
type Section struct {
	Name    string
	Span    source.Span
	Entries []Entry
}

// Entry returns the first entry with the given key.
func (s *Section) Entry(key string) (*Entry, bool) {
	for i := range s.Entries {
		if s.Entries[i].Key == key {
			return &s.Entries[i], true
		}
	}
	return nil, false
}

func (s Section) clone() Section {
	out := Section{Name: s.Name, Span: s.Span, Entries: make([]Entry, len(s.Entries))}
	for i := range s.Entries {
		out.Entries[i] = Entry{
			Key:   s.Entries[i].Key,
			Span:  s.Entries[i].Span,
			Value: CloneValue(s.Entries[i].Value),
		}
	}
	return out
}

// Entry is one key = value assignment.
type Entry struct {
	Key   string
	Span  source.Span
	Value Value
}

// Value is the closed set of value expressions.
type Value interface {
	Span() source.Span
	value()
}

// String is a quoted string literal.
type String struct {
	Val string
	At  source.Span
}

// Number is an integer or float literal; IsInt records which form was written.
type Number struct {
	Val   float64
	IsInt bool
	At    source.Span
}

// Bool is a true/false literal.
type Bool struct {
	Val bool
	At  source.Span
}

// Null is the null literal.
type Null struct {
	At source.Span
}

// Date is a bare ISO date literal.
type Date struct {
	Val time.Time
	At  source.Span
}

// Array is an ordered list literal.
type Array struct {
	Elems []Value
	At    source.Span
}

// Object is an inline mapping literal.
type Object struct {
	Keys  []string
	Vals  []Value
	At    source.Span
}

// FuncLit is an embedded function body (FUJSEN), captured verbatim.
type FuncLit struct {
	Body string
	At   source.Span
}

// OperatorCall is a '@name(...)' expression. Raw holds the full call text;
// Args holds the comma-split argument texts at paren depth zero. Neither is
// evaluated here.
type OperatorCall struct {
	Name string
	Raw  string
	Args []string
	At   source.Span
}

// RefKind distinguishes the reference forms.
type RefKind uint8

const (
	// RefGlobal is a '$name' reference.
	RefGlobal RefKind = iota
	// RefLocal is a bare 'key' reference within the current section.
	RefLocal
	// RefDotted is a 'section.key' reference, possibly with further segments.
	RefDotted
	// RefCrossFile is an '@file.tsk.get(...)' style cross-file reference.
	RefCrossFile
)

// Reference names another value instead of holding one.
type Reference struct {
	Kind RefKind
	// Segments holds the dotted path; for RefGlobal it is the bare name,
	// for RefCrossFile the target file then the method and argument text.
	Segments []string
	At       source.Span
}

func (v String) Span() source.Span       { return v.At }
func (v Number) Span() source.Span       { return v.At }
func (v Bool) Span() source.Span         { return v.At }
func (v Null) Span() source.Span         { return v.At }
func (v Date) Span() source.Span         { return v.At }
func (v Array) Span() source.Span        { return v.At }
func (v Object) Span() source.Span       { return v.At }
func (v FuncLit) Span() source.Span      { return v.At }
func (v OperatorCall) Span() source.Span { return v.At }
func (v Reference) Span() source.Span    { return v.At }

func (String) value()       {}
func (Number) value()       {}
func (Bool) value()         {}
func (Null) value()         {}
func (Date) value()         {}
func (Array) value()        {}
func (Object) value()       {}
func (FuncLit) value()      {}
func (OperatorCall) value() {}
func (Reference) value()    {}

// CloneValue deep-copies a value expression.
func CloneValue(v Value) Value {
	switch v := v.(type) {
	case Array:
		elems := make([]Value, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = CloneValue(e)
		}
		return Array{Elems: elems, At: v.At}
	case Object:
		keys := make([]string, len(v.Keys))
		copy(keys, v.Keys)
		vals := make([]Value, len(v.Vals))
		for i, e := range v.Vals {
			vals[i] = CloneValue(e)
		}
		return Object{Keys: keys, Vals: vals, At: v.At}
	case OperatorCall:
		args := make([]string, len(v.Args))
		copy(args, v.Args)
		return OperatorCall{Name: v.Name, Raw: v.Raw, Args: args, At: v.At}
	case Reference:
		segs := make([]string, len(v.Segments))
		copy(segs, v.Segments)
		return Reference{Kind: v.Kind, Segments: segs, At: v.At}
	default:
		// Scalars and FuncLit are value types with no shared backing.
		return v
	}
}
