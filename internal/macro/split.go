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

// SplitOperands splits an expression body on the commas that are not inside
// a nested [...] group:
//
//	list    = operand { "," operand }
//	operand = { group | escape | char }
//	group   = "[" { group | escape | char | "," } "]"
//	escape  = "\" char
//
// A ']' with no open group is ordinary text. Operands are returned
// untrimmed.
func SplitOperands(body string) ([]string, error) {
	p := &splitter{src: body}
	return p.list()
}

type splitter struct {
	src string
	pos int
}

func (p *splitter) list() ([]string, error) {
	var out []string
	for {
		start := p.pos
		if err := p.operand(); err != nil {
			return nil, err
		}
		out = append(out, p.src[start:p.pos])
		if p.pos >= len(p.src) {
			return out, nil
		}
		p.pos++ // ','
	}
}

// operand consumes up to the next top-level comma or the end of input.
func (p *splitter) operand() error {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ',':
			return nil
		case '[':
			if err := p.group(); err != nil {
				return err
			}
		case '\\':
			p.escape()
		default:
			p.pos++
		}
	}
	return nil
}

// group consumes a balanced [...] including nested groups.
func (p *splitter) group() error {
	start := p.pos
	p.pos++ // '['
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ']':
			p.pos++
			return nil
		case '[':
			if err := p.group(); err != nil {
				return err
			}
		case '\\':
			p.escape()
		default:
			p.pos++
		}
	}
	return &MalformedTokenError{Offset: start, Reason: "unclosed '[' in " + strings.TrimSpace(p.src)}
}

func (p *splitter) escape() {
	p.pos += 2
	if p.pos > len(p.src) {
		p.pos = len(p.src)
	}
}
