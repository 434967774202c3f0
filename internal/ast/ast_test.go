package ast

import "testing"

func TestEmptyDocument(t *testing.T) {
	var nilDoc *Document
	if !nilDoc.Empty() {
		t.Error("nil document should be empty")
	}
	if !NewDocument().Empty() {
		t.Error("fresh document should be empty")
	}
	if nilDoc.Clone() == nil || !nilDoc.Clone().Empty() {
		t.Error("cloning nil yields an empty document")
	}
}

func TestSectionAndEntryLookup(t *testing.T) {
	doc := &Document{Sections: []Section{
		{Name: "app", Entries: []Entry{
			{Key: "name", Value: String{Val: "demo"}},
			{Key: "port", Value: Number{Val: 8080, IsInt: true}},
		}},
		{Name: "db", Entries: []Entry{{Key: "host", Value: String{Val: "localhost"}}}},
	}}

	sec, ok := doc.Section("db")
	if !ok || sec.Name != "db" {
		t.Fatal("section lookup failed")
	}
	if _, ok := doc.Section("missing"); ok {
		t.Error("unexpected section hit")
	}
	if e, ok := sec.Entry("host"); !ok || e.Value.(String).Val != "localhost" {
		t.Error("entry lookup failed")
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := &Document{Sections: []Section{
		{Name: "app", Entries: []Entry{
			{Key: "tags", Value: Array{Elems: []Value{String{Val: "a"}, Number{Val: 1}}}},
			{Key: "opts", Value: Object{Keys: []string{"x"}, Vals: []Value{Bool{Val: true}}}},
			{Key: "env", Value: OperatorCall{Name: "env", Raw: `@env("HOME")`, Args: []string{`"HOME"`}}},
			{Key: "ref", Value: Reference{Kind: RefGlobal, Segments: []string{"base"}}},
		}},
	}}

	clone := doc.Clone()
	clone.Sections[0].Name = "mutated"
	clone.Sections[0].Entries[0].Value.(Array).Elems[0] = Null{}
	clone.Sections[0].Entries[2].Value.(OperatorCall).Args[0] = "x"

	if doc.Sections[0].Name != "app" {
		t.Error("section name shared")
	}
	if doc.Sections[0].Entries[0].Value.(Array).Elems[0].(String).Val != "a" {
		t.Error("array backing shared")
	}
	if doc.Sections[0].Entries[2].Value.(OperatorCall).Args[0] != `"HOME"` {
		t.Error("operator args shared")
	}
}
