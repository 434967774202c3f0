package parser

import "tusktsk/internal/token"

// ListStream replays an already-scanned token list.
type ListStream struct {
	toks []token.Token
	pos  int
}

// NewListStream wraps toks; the list is expected to end with EOF.
func NewListStream(toks []token.Token) *ListStream {
	return &ListStream{toks: toks}
}

func (s *ListStream) Peek() token.Token {
	if s.pos >= len(s.toks) {
		return token.Token{Kind: token.EOF}
	}
	return s.toks[s.pos]
}

func (s *ListStream) Next() token.Token {
	t := s.Peek()
	if s.pos < len(s.toks) {
		s.pos++
	}
	return t
}
