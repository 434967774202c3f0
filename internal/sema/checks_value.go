package sema

import (
	"fmt"
	"strconv"
	"strings"

	"tusktsk/internal/ast"
	"tusktsk/internal/diag"
)

// checkValue walks one value expression and dispatches the per-form checks.
func (a *analyzer) checkValue(sec *ast.Section, key string, v ast.Value) {
	switch v := v.(type) {
	case ast.Array:
		a.checkArray(sec, key, v)
	case ast.Object:
		a.checkObject(sec, key, v)
	case ast.OperatorCall:
		a.checkOperatorCall(v)
	case ast.Reference:
		a.checkReference(sec, v)
	case ast.String:
		a.checkImplicitConversion(v)
	}
}

func (a *analyzer) checkArray(sec *ast.Section, key string, v ast.Array) {
	for _, el := range v.Elems {
		a.checkValue(sec, key, el)
	}
	if !a.opts.WarnMixedArrays {
		return
	}
	first := ""
	for _, el := range v.Elems {
		name := scalarTypeName(el)
		if name == "" {
			continue // refs, calls and composites don't participate
		}
		if first == "" {
			first = name
			continue
		}
		if name != first {
			a.warnKind(diag.MixedArrayTypes, v.At,
				fmt.Sprintf("array mixes %s and %s elements", first, name))
			return
		}
	}
}

func (a *analyzer) checkObject(sec *ast.Section, key string, v ast.Object) {
	seen := make(map[string]bool, len(v.Keys))
	for i, k := range v.Keys {
		if !validIdent(k) {
			a.errKind(diag.InvalidIdentifier, v.At,
				fmt.Sprintf("invalid object key %q", k))
		}
		if seen[k] && a.opts.WarnDuplicates {
			a.warnKind(diag.DuplicateKey, v.At,
				fmt.Sprintf("duplicate key %q in inline object", k))
		}
		seen[k] = true
		a.checkValue(sec, key, v.Vals[i])
	}
}

// checkOperatorCall validates shape against the closed operator table:
// unknown names warn, wrong arity is an error, a non-string literal in a
// string position is a type mismatch.
func (a *analyzer) checkOperatorCall(v ast.OperatorCall) {
	sig, ok := knownOperators[v.Name]
	if !ok {
		a.warnKind(diag.UnknownOperator, v.At,
			fmt.Sprintf("unknown operator @%s", v.Name))
		return
	}
	n := len(v.Args)
	if n < sig.minArgs || (sig.maxArgs >= 0 && n > sig.maxArgs) {
		want := fmt.Sprintf("%d", sig.minArgs)
		if sig.maxArgs != sig.minArgs {
			if sig.maxArgs < 0 {
				want = fmt.Sprintf("at least %d", sig.minArgs)
			} else {
				want = fmt.Sprintf("%d..%d", sig.minArgs, sig.maxArgs)
			}
		}
		a.errKind(diag.WrongArgumentCount, v.At,
			fmt.Sprintf("@%s takes %s argument(s), got %d", v.Name, want, n))
		return
	}
	for i, arg := range v.Args {
		if i >= len(sig.fixed) {
			break
		}
		if sig.fixed[i] == argString && !looksLikeStringArg(arg) {
			a.errKind(diag.TypeMismatch, v.At,
				fmt.Sprintf("@%s argument %d must be a string, got %q", v.Name, i+1, arg))
		}
	}
}

// looksLikeStringArg accepts quoted literals and nested constructs whose type
// is only known at evaluation time (@calls, $refs).
func looksLikeStringArg(arg string) bool {
	if arg == "" {
		return false
	}
	switch arg[0] {
	case '"', '\'', '@', '$':
		return true
	}
	return false
}

func (a *analyzer) checkReference(sec *ast.Section, v ast.Reference) {
	switch v.Kind {
	case ast.RefGlobal:
		a.checkGlobalRef(v)
	case ast.RefLocal:
		if _, ok := sec.Entry(v.Segments[0]); !ok {
			a.errKind(diag.UndefinedVariable, v.At,
				fmt.Sprintf("undefined reference %q in section [%s]", v.Segments[0], sec.Name))
		}
	case ast.RefDotted:
		a.checkDottedRef(v)
	case ast.RefCrossFile:
		a.checkCrossFileRef(v)
	}
}

func (a *analyzer) checkGlobalRef(v ast.Reference) {
	name := v.Segments[0]
	globals, ok := a.globalsSection()
	if !ok {
		a.errKind(diag.UndefinedVariable, v.At,
			fmt.Sprintf("undefined global $%s: document has no [global] section", name))
		return
	}
	entry, ok := globals.Entry(name)
	if !ok {
		a.errKind(diag.UndefinedVariable, v.At,
			fmt.Sprintf("undefined global $%s", name))
		return
	}
	a.globalsUsed[name] = true
	if len(v.Segments) > 1 {
		a.traverse(entry.Value, v.Segments[1:], v)
	}
}

// checkDottedRef resolves section.key and any further property/index segments.
func (a *analyzer) checkDottedRef(v ast.Reference) {
	target, ok := a.doc.Section(v.Segments[0])
	if !ok {
		a.errKind(diag.UndefinedVariable, v.At,
			fmt.Sprintf("undefined section %q in reference", v.Segments[0]))
		return
	}
	entry, ok := target.Entry(v.Segments[1])
	if !ok {
		a.errKind(diag.UndefinedVariable, v.At,
			fmt.Sprintf("undefined key %q in section [%s]", v.Segments[1], v.Segments[0]))
		return
	}
	if len(v.Segments) > 2 {
		a.traverse(entry.Value, v.Segments[2:], v)
	}
}

// traverse follows property/index segments into a resolved value. Property
// access requires an inline object, index access requires an array.
func (a *analyzer) traverse(val ast.Value, segs []string, ref ast.Reference) {
	for _, seg := range segs {
		if idx, err := strconv.Atoi(seg); err == nil {
			arr, ok := val.(ast.Array)
			if !ok {
				a.errKind(diag.InvalidIndexAccess, ref.At,
					fmt.Sprintf("index .%s on non-array value", seg))
				return
			}
			if idx < 0 || idx >= len(arr.Elems) {
				a.errKind(diag.InvalidIndexAccess, ref.At,
					fmt.Sprintf("index %d out of range (array has %d elements)", idx, len(arr.Elems)))
				return
			}
			val = arr.Elems[idx]
			continue
		}

		obj, ok := val.(ast.Object)
		if !ok {
			a.errKind(diag.InvalidPropertyAccess, ref.At,
				fmt.Sprintf("property .%s on non-object value", seg))
			return
		}
		found := false
		for i, k := range obj.Keys {
			if k == seg {
				val = obj.Vals[i]
				found = true
				break
			}
		}
		if !found {
			a.errKind(diag.UndefinedVariable, ref.At,
				fmt.Sprintf("undefined property %q", seg))
			return
		}
	}
}

// checkCrossFileRef validates the method verb; the target file itself is out
// of reach for this pipeline, which is exactly what WARN010 records.
func (a *analyzer) checkCrossFileRef(v ast.Reference) {
	method := ""
	for i, seg := range v.Segments {
		if seg == "tsk" && i+1 < len(v.Segments) {
			method = v.Segments[i+1]
			break
		}
	}
	if method != "" && !knownCrossFileMethods[method] {
		a.warnKind(diag.UnknownMethod, v.At,
			fmt.Sprintf("unknown cross-file method %q", method))
	}
	if a.opts.WarnCrossFile {
		a.warnKind(diag.UnvalidatedCrossReference, v.At,
			fmt.Sprintf("cross-file reference %s is not validated", strings.Join(v.Segments, ".")))
	}
}

// checkImplicitConversion flags quoted scalars that consumers will coerce.
func (a *analyzer) checkImplicitConversion(v ast.String) {
	if !a.opts.WarnImplicitConversion {
		return
	}
	s := strings.TrimSpace(v.Val)
	if s == "" {
		return
	}
	if s == "true" || s == "false" {
		a.warnKind(diag.ImplicitConversion, v.At,
			fmt.Sprintf("quoted boolean %q will be converted by consumers", s))
		return
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		a.warnKind(diag.ImplicitConversion, v.At,
			fmt.Sprintf("quoted number %q will be converted by consumers", s))
	}
}

func scalarTypeName(v ast.Value) string {
	switch v.(type) {
	case ast.String:
		return "string"
	case ast.Number:
		return "number"
	case ast.Bool:
		return "bool"
	case ast.Null:
		return "null"
	case ast.Date:
		return "date"
	default:
		return ""
	}
}
