package factory

import (
	"time"

	"tusktsk/internal/ast"
	"tusktsk/internal/source"
)

// The packed forms flatten the ast.Value interface into a tagged struct so
// msgpack can round-trip documents without custom codecs.

type packedKind uint8

const (
	packString packedKind = iota
	packNumber
	packBool
	packNull
	packDate
	packArray
	packObject
	packFunc
	packOperator
	packReference
)

// PackedValue is one value expression in persisted form.
type PackedValue struct {
	Kind  packedKind
	At    source.Span
	Str   string  // string value, function body, operator raw text
	Num   float64 `msgpack:",omitempty"`
	IsInt bool    `msgpack:",omitempty"`
	Flag  bool    `msgpack:",omitempty"`
	Time  time.Time
	Name  string        `msgpack:",omitempty"`
	Strs  []string      `msgpack:",omitempty"` // object keys / op args / ref segments
	Elems []PackedValue `msgpack:",omitempty"`
	Ref   uint8         `msgpack:",omitempty"`
}

// PackedEntry is one assignment.
type PackedEntry struct {
	Key   string
	Span  source.Span
	Value PackedValue
}

// PackedSection is one section.
type PackedSection struct {
	Name    string
	Span    source.Span
	Entries []PackedEntry
}

// PackedDocument is a whole document.
type PackedDocument struct {
	Sections []PackedSection
}

// PackDocument converts a document into its persisted form.
func PackDocument(doc *ast.Document) PackedDocument {
	out := PackedDocument{Sections: make([]PackedSection, 0, len(doc.Sections))}
	for _, sec := range doc.Sections {
		ps := PackedSection{Name: sec.Name, Span: sec.Span, Entries: make([]PackedEntry, 0, len(sec.Entries))}
		for _, e := range sec.Entries {
			ps.Entries = append(ps.Entries, PackedEntry{Key: e.Key, Span: e.Span, Value: packValue(e.Value)})
		}
		out.Sections = append(out.Sections, ps)
	}
	return out
}

// UnpackDocument restores a document from its persisted form.
func UnpackDocument(pd PackedDocument) *ast.Document {
	doc := &ast.Document{Sections: make([]ast.Section, 0, len(pd.Sections))}
	for _, ps := range pd.Sections {
		sec := ast.Section{Name: ps.Name, Span: ps.Span, Entries: make([]ast.Entry, 0, len(ps.Entries))}
		for _, pe := range ps.Entries {
			sec.Entries = append(sec.Entries, ast.Entry{Key: pe.Key, Span: pe.Span, Value: unpackValue(pe.Value)})
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc
}

func packValue(v ast.Value) PackedValue {
	switch v := v.(type) {
	case ast.String:
		return PackedValue{Kind: packString, At: v.At, Str: v.Val}
	case ast.Number:
		return PackedValue{Kind: packNumber, At: v.At, Num: v.Val, IsInt: v.IsInt}
	case ast.Bool:
		return PackedValue{Kind: packBool, At: v.At, Flag: v.Val}
	case ast.Null:
		return PackedValue{Kind: packNull, At: v.At}
	case ast.Date:
		return PackedValue{Kind: packDate, At: v.At, Time: v.Val}
	case ast.Array:
		elems := make([]PackedValue, 0, len(v.Elems))
		for _, e := range v.Elems {
			elems = append(elems, packValue(e))
		}
		return PackedValue{Kind: packArray, At: v.At, Elems: elems}
	case ast.Object:
		elems := make([]PackedValue, 0, len(v.Vals))
		for _, e := range v.Vals {
			elems = append(elems, packValue(e))
		}
		return PackedValue{Kind: packObject, At: v.At, Strs: v.Keys, Elems: elems}
	case ast.FuncLit:
		return PackedValue{Kind: packFunc, At: v.At, Str: v.Body}
	case ast.OperatorCall:
		return PackedValue{Kind: packOperator, At: v.At, Name: v.Name, Str: v.Raw, Strs: v.Args}
	case ast.Reference:
		return PackedValue{Kind: packReference, At: v.At, Ref: uint8(v.Kind), Strs: v.Segments}
	default:
		return PackedValue{Kind: packNull, At: v.Span()}
	}
}

func unpackValue(pv PackedValue) ast.Value {
	switch pv.Kind {
	case packString:
		return ast.String{Val: pv.Str, At: pv.At}
	case packNumber:
		return ast.Number{Val: pv.Num, IsInt: pv.IsInt, At: pv.At}
	case packBool:
		return ast.Bool{Val: pv.Flag, At: pv.At}
	case packDate:
		return ast.Date{Val: pv.Time, At: pv.At}
	case packArray:
		elems := make([]ast.Value, 0, len(pv.Elems))
		for _, e := range pv.Elems {
			elems = append(elems, unpackValue(e))
		}
		return ast.Array{Elems: elems, At: pv.At}
	case packObject:
		vals := make([]ast.Value, 0, len(pv.Elems))
		for _, e := range pv.Elems {
			vals = append(vals, unpackValue(e))
		}
		return ast.Object{Keys: pv.Strs, Vals: vals, At: pv.At}
	case packFunc:
		return ast.FuncLit{Body: pv.Str, At: pv.At}
	case packOperator:
		return ast.OperatorCall{Name: pv.Name, Raw: pv.Str, Args: pv.Strs, At: pv.At}
	case packReference:
		return ast.Reference{Kind: ast.RefKind(pv.Ref), Segments: pv.Strs, At: pv.At}
	default:
		return ast.Null{At: pv.At}
	}
}
