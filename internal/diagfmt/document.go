package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"tusktsk/internal/ast"
)

// FormatDocumentPretty renders a document back as configuration text. The
// output is normalized: one entry per line, '=' assignments, canonical value
// spelling. Operator calls keep their captured text verbatim.
func FormatDocumentPretty(w io.Writer, doc *ast.Document) error {
	for i, sec := range doc.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%s]\n", sec.Name)
		for _, e := range sec.Entries {
			fmt.Fprintf(w, "%s = %s\n", e.Key, renderValue(e.Value))
		}
	}
	return nil
}

// FormatDocumentJSON writes the document as a typed JSON tree.
func FormatDocumentJSON(w io.Writer, doc *ast.Document) error {
	sections := make([]any, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		entries := make([]any, 0, len(sec.Entries))
		for _, e := range sec.Entries {
			entries = append(entries, map[string]any{
				"key":   e.Key,
				"value": jsonValue(e.Value),
			})
		}
		sections = append(sections, map[string]any{
			"name":    sec.Name,
			"entries": entries,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"sections": sections})
}

func renderValue(v ast.Value) string {
	switch v := v.(type) {
	case ast.String:
		return strconv.Quote(v.Val)
	case ast.Number:
		if v.IsInt {
			return strconv.FormatInt(int64(v.Val), 10)
		}
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case ast.Bool:
		return strconv.FormatBool(v.Val)
	case ast.Null:
		return "null"
	case ast.Date:
		return v.Val.Format("2006-01-02")
	case ast.Array:
		parts := make([]string, 0, len(v.Elems))
		for _, e := range v.Elems {
			parts = append(parts, renderValue(e))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ast.Object:
		parts := make([]string, 0, len(v.Keys))
		for i, k := range v.Keys {
			parts = append(parts, k+" = "+renderValue(v.Vals[i]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ast.FuncLit:
		return `"""` + v.Body + `"""`
	case ast.OperatorCall:
		return v.Raw
	case ast.Reference:
		return renderReference(v)
	default:
		return "null"
	}
}

func renderReference(r ast.Reference) string {
	switch r.Kind {
	case ast.RefGlobal:
		return "$" + strings.Join(r.Segments, ".")
	case ast.RefCrossFile:
		n := len(r.Segments)
		if n > 1 && !identText(r.Segments[n-1]) {
			return "@" + strings.Join(r.Segments[:n-1], ".") + "(" + r.Segments[n-1] + ")"
		}
		return "@" + strings.Join(r.Segments, ".")
	default:
		return strings.Join(r.Segments, ".")
	}
}

func jsonValue(v ast.Value) map[string]any {
	switch v := v.(type) {
	case ast.String:
		return map[string]any{"type": "string", "value": v.Val}
	case ast.Number:
		if v.IsInt {
			return map[string]any{"type": "integer", "value": int64(v.Val)}
		}
		return map[string]any{"type": "float", "value": v.Val}
	case ast.Bool:
		return map[string]any{"type": "bool", "value": v.Val}
	case ast.Null:
		return map[string]any{"type": "null"}
	case ast.Date:
		return map[string]any{"type": "date", "value": v.Val.Format("2006-01-02")}
	case ast.Array:
		elems := make([]any, 0, len(v.Elems))
		for _, e := range v.Elems {
			elems = append(elems, jsonValue(e))
		}
		return map[string]any{"type": "array", "elements": elems}
	case ast.Object:
		fields := make(map[string]any, len(v.Keys))
		for i, k := range v.Keys {
			fields[k] = jsonValue(v.Vals[i])
		}
		return map[string]any{"type": "object", "fields": fields}
	case ast.FuncLit:
		return map[string]any{"type": "function", "body": v.Body}
	case ast.OperatorCall:
		return map[string]any{"type": "operator", "name": v.Name, "raw": v.Raw, "args": v.Args}
	case ast.Reference:
		return map[string]any{"type": "reference", "kind": refKindName(v.Kind), "segments": v.Segments}
	default:
		return map[string]any{"type": "null"}
	}
}

func refKindName(k ast.RefKind) string {
	switch k {
	case ast.RefGlobal:
		return "global"
	case ast.RefLocal:
		return "local"
	case ast.RefDotted:
		return "dotted"
	case ast.RefCrossFile:
		return "cross_file"
	default:
		return "unknown"
	}
}

func identText(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
