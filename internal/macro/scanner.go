// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package macro

import "strings"

const (
	// Marker starts every macro token.
	Marker = '`'
	// FuncMarker prefixes type-formatted references and function operands.
	FuncMarker = '$'
)

// TokenKind classifies a Token.
type TokenKind int

const (
	// TokenText is template text outside any macro.
	TokenText TokenKind = iota
	// TokenVar is `name: a context lookup.
	TokenVar
	// TokenTypeRef is `$name: a name formatted by the current type.
	TokenTypeRef
	// TokenExpr is `[...]: a bracketed postfix expression.
	TokenExpr
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenVar:
		return "var"
	case TokenTypeRef:
		return "typeref"
	case TokenExpr:
		return "expr"
	default:
		return "unknown"
	}
}

// Token is one piece of template text.
type Token struct {
	Kind   TokenKind
	Offset int // byte offset of the token in the source
	// Text is the literal text, the identifier (marker, '$' and trailing
	// '.' removed), or the expression body with \] unescaped.
	Text string
	// Raw is the token exactly as it appears in the source.
	Raw string
}

// Scanner splits template text into tokens. Like bufio.Scanner it is
// driven by Scan and cannot be restarted; the first error stops it.
type Scanner struct {
	src string
	pos int
	tok Token
	err error
}

// NewScanner returns a scanner over src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Scan advances to the next token. It returns false at the end of the
// input or on error.
func (s *Scanner) Scan() bool {
	if s.err != nil || s.pos >= len(s.src) {
		return false
	}
	start := s.pos
	if s.src[start] != Marker {
		end := strings.IndexByte(s.src[start:], Marker)
		if end < 0 {
			end = len(s.src)
		} else {
			end += start
		}
		s.pos = end
		s.tok = Token{Kind: TokenText, Offset: start, Text: s.src[start:end], Raw: s.src[start:end]}
		return true
	}

	tok, err := s.scanMacro(start)
	if err != nil {
		s.err = err
		return false
	}
	s.tok = tok
	return true
}

// Token returns the most recent token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the first error met by Scan.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) scanMacro(start int) (Token, error) {
	i := start + 1
	if i >= len(s.src) {
		return Token{}, &MalformedTokenError{Offset: start, Reason: "marker at end of input"}
	}
	switch c := s.src[i]; {
	case c == '[':
		return s.scanExpr(start)
	case c == FuncMarker:
		return s.scanRef(start, i+1, TokenTypeRef)
	case isLetter(c):
		return s.scanRef(start, i, TokenVar)
	default:
		return Token{}, &MalformedTokenError{Offset: start, Reason: "unexpected " + quoteByte(c) + " after marker"}
	}
}

// scanRef reads letters from i, plus an optional '.' that only separates
// the reference from following text.
func (s *Scanner) scanRef(start, i int, kind TokenKind) (Token, error) {
	j := i
	for j < len(s.src) && isLetter(s.src[j]) {
		j++
	}
	if j == i {
		return Token{}, &MalformedTokenError{Offset: start, Reason: "missing identifier"}
	}
	name := s.src[i:j]
	if j < len(s.src) && s.src[j] == '.' {
		j++
	}
	s.pos = j
	return Token{Kind: kind, Offset: start, Text: name, Raw: s.src[start:j]}, nil
}

// scanExpr reads a bracketed expression. Nested '[' must be closed by ']'
// or by an escaped "\]"; only an unescaped ']' at the outer level ends the
// expression.
func (s *Scanner) scanExpr(start int) (Token, error) {
	depth := 0
	for j := start + 1; j < len(s.src); j++ {
		switch s.src[j] {
		case '\\':
			if j+1 < len(s.src) && s.src[j+1] == ']' && depth > 1 {
				depth--
			}
			j++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				s.pos = j + 1
				body := s.src[start+2 : j]
				return Token{
					Kind:   TokenExpr,
					Offset: start,
					Text:   strings.ReplaceAll(body, `\]`, "]"),
					Raw:    s.src[start:s.pos],
				}, nil
			}
		}
	}
	return Token{}, &MalformedTokenError{Offset: start, Reason: "unterminated bracket expression"}
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func quoteByte(c byte) string {
	return "'" + string(rune(c)) + "'"
}
