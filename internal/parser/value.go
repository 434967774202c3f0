package parser

import (
	"strings"
	"time"

	"tusktsk/internal/ast"
	"tusktsk/internal/token"
)

// parseValue parses exactly one value expression. The owning key is passed in
// because a quoted string under a *_fujsen key is an embedded function body,
// not document data.
func (p *Parser) parseValue(key string) (ast.Value, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.String:
		p.advance()
		if strings.HasSuffix(key, "_fujsen") {
			return ast.FuncLit{Body: tok.Value.(string), At: tok.Span}, true
		}
		return ast.String{Val: tok.Value.(string), At: tok.Span}, true

	case token.Number:
		p.advance()
		switch v := tok.Value.(type) {
		case int64:
			return ast.Number{Val: float64(v), IsInt: true, At: tok.Span}, true
		case float64:
			return ast.Number{Val: v, At: tok.Span}, true
		}
		p.fail(tok, "malformed numeric token")
		return nil, false

	case token.Bool:
		p.advance()
		return ast.Bool{Val: tok.Value.(bool), At: tok.Span}, true

	case token.Null:
		p.advance()
		return ast.Null{At: tok.Span}, true

	case token.Date:
		p.advance()
		return ast.Date{Val: tok.Value.(time.Time), At: tok.Span}, true

	case token.FuncBody:
		p.advance()
		return ast.FuncLit{Body: tok.Value.(string), At: tok.Span}, true

	case token.AtCall:
		p.advance()
		return atCallValue(tok), true

	case token.Dollar:
		return p.parseGlobalRef()

	case token.Ident:
		return p.parseLocalRef()

	case token.LBracket:
		return p.parseArray()

	case token.LBrace:
		return p.parseObject()

	default:
		p.fail(tok, "expected a value")
		return nil, false
	}
}

// parseGlobalRef parses '$name' with optional '.seg' tail.
func (p *Parser) parseGlobalRef() (ast.Value, bool) {
	dollar := p.advance()
	name, ok := p.expect(token.Ident, "expected variable name after '$'")
	if !ok {
		return nil, false
	}
	segs := []string{name.Text}
	span := dollar.Span.Cover(name.Span)
	for p.at(token.Dot) {
		p.advance()
		seg, ok := p.expect(token.Ident, "expected name after '.'")
		if !ok {
			return nil, false
		}
		segs = append(segs, seg.Text)
		span = span.Cover(seg.Span)
	}
	return ast.Reference{Kind: ast.RefGlobal, Segments: segs, At: span}, true
}

// parseLocalRef parses 'key' or 'section.key' references. Numeric path
// segments are accepted here; semantic analysis resolves the first two
// segments of a dotted reference as section.key and only the segments after
// that as property/index traversal.
func (p *Parser) parseLocalRef() (ast.Value, bool) {
	name := p.advance()
	segs := []string{name.Text}
	span := name.Span
	for p.at(token.Dot) {
		p.advance()
		var seg token.Token
		switch {
		case p.at(token.Ident), p.at(token.Number):
			seg = p.advance()
		default:
			p.fail(p.lx.Peek(), "expected name or index after '.'")
			return nil, false
		}
		segs = append(segs, seg.Text)
		span = span.Cover(seg.Span)
	}
	kind := ast.RefLocal
	if len(segs) > 1 {
		kind = ast.RefDotted
	}
	return ast.Reference{Kind: kind, Segments: segs, At: span}, true
}

func (p *Parser) parseArray() (ast.Value, bool) {
	open := p.advance()
	elems := make([]ast.Value, 0, 4)
	if p.at(token.RBracket) {
		closeTok := p.advance()
		return ast.Array{Elems: elems, At: open.Span.Cover(closeTok.Span)}, true
	}
	for {
		el, ok := p.parseValue("")
		if !ok {
			return nil, false
		}
		elems = append(elems, el)
		if p.at(token.Comma) {
			p.advance()
			// trailing comma before ']'
			if p.at(token.RBracket) {
				break
			}
			continue
		}
		break
	}
	closeTok, ok := p.expect(token.RBracket, "expected ']' or ',' in array")
	if !ok {
		return nil, false
	}
	return ast.Array{Elems: elems, At: open.Span.Cover(closeTok.Span)}, true
}

func (p *Parser) parseObject() (ast.Value, bool) {
	open := p.advance()
	obj := ast.Object{Keys: make([]string, 0, 4), Vals: make([]ast.Value, 0, 4)}
	if p.at(token.RBrace) {
		closeTok := p.advance()
		obj.At = open.Span.Cover(closeTok.Span)
		return obj, true
	}
	for {
		var keyText string
		switch {
		case p.at(token.Ident):
			keyText = p.advance().Text
		case p.at(token.String):
			keyText = p.advance().Value.(string)
		default:
			p.fail(p.lx.Peek(), "expected key in inline object")
			return nil, false
		}
		if _, ok := p.expect(token.Assign, "expected '=' or ':' in inline object"); !ok {
			return nil, false
		}
		val, ok := p.parseValue(keyText)
		if !ok {
			return nil, false
		}
		obj.Keys = append(obj.Keys, keyText)
		obj.Vals = append(obj.Vals, val)
		if p.at(token.Comma) {
			p.advance()
			if p.at(token.RBrace) {
				break
			}
			continue
		}
		break
	}
	closeTok, ok := p.expect(token.RBrace, "expected '}' or ',' in inline object")
	if !ok {
		return nil, false
	}
	obj.At = open.Span.Cover(closeTok.Span)
	return obj, true
}

// atCallValue converts a captured '@...' token into its AST form. Calls whose
// name traverses a '.tsk' file are cross-file references; everything else is
// an operator call kept verbatim for the external evaluator.
func atCallValue(tok token.Token) ast.Value {
	raw := tok.Text
	name := raw[1:] // drop '@'
	argText := ""
	if i := strings.IndexByte(name, '('); i >= 0 {
		argText = name[i+1 : len(name)-1]
		name = name[:i]
	}

	if strings.Contains(name, ".tsk.") || strings.HasSuffix(name, ".tsk") {
		segs := strings.Split(name, ".")
		if argText != "" {
			segs = append(segs, argText)
		}
		return ast.Reference{Kind: ast.RefCrossFile, Segments: segs, At: tok.Span}
	}
	return ast.OperatorCall{Name: name, Raw: raw, Args: splitArgs(argText), At: tok.Span}
}

// splitArgs splits the raw argument text on commas at paren depth zero,
// respecting string quoting. It never evaluates anything.
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	out := make([]string, 0, 2)
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if quote != 0 {
			if b == '\\' {
				i++
			} else if b == quote {
				quote = 0
			}
			continue
		}
		switch b {
		case '"', '\'':
			quote = b
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(s[start:]))
	return out
}
