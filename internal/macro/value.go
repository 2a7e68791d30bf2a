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

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ajroetker/mathgen/internal/types"
	"github.com/samber/lo"
)

// Value is an evaluation stack entry or a context binding. It is one of
// Str, Int, List, Dims or TypeValue.
type Value interface {
	value()
}

// Str is generated text.
type Str string

// Int is a generation-time integer.
type Int int

// List is a sequence of text fragments.
type List []string

// Dims is a dimension descriptor.
type Dims []int

// TypeValue carries a concrete type.
type TypeValue struct {
	Type types.Type
}

func (Str) value()       {}
func (Int) value()       {}
func (List) value()      {}
func (Dims) value()      {}
func (TypeValue) value() {}

// Context holds the variable bindings of one template expansion.
type Context map[string]Value

func kindOf(v Value) string {
	switch v.(type) {
	case Str:
		return "string"
	case Int:
		return "int"
	case List:
		return "list"
	case Dims:
		return "dims"
	case TypeValue:
		return "type"
	case nil:
		return "nothing"
	default:
		panic(fmt.Sprintf("macro: unknown Value variant %T", v))
	}
}

// render is a debugging representation used in error messages.
func render(v Value) string {
	switch v := v.(type) {
	case Str:
		return strconv.Quote(string(v))
	case Int:
		return strconv.Itoa(int(v))
	case List:
		return "[" + strings.Join(lo.Map(v, func(s string, _ int) string { return strconv.Quote(s) }), ", ") + "]"
	case Dims:
		return fmt.Sprint([]int(v))
	case TypeValue:
		return v.Type.Name()
	case nil:
		return ""
	default:
		panic(fmt.Sprintf("macro: unknown Value variant %T", v))
	}
}

// asString requires text.
func asString(fn string, v Value) (string, error) {
	if s, ok := v.(Str); ok {
		return string(s), nil
	}
	return "", &ValueError{Func: fn, Want: "string", Got: v}
}

// asInt accepts Int or decimal text.
func asInt(fn string, v Value) (int, error) {
	switch v := v.(type) {
	case Int:
		return int(v), nil
	case Str:
		n, err := strconv.Atoi(strings.TrimSpace(string(v)))
		if err != nil {
			return 0, &ValueError{Func: fn, Want: "int", Got: v}
		}
		return n, nil
	default:
		return 0, &ValueError{Func: fn, Want: "int", Got: v}
	}
}

// asList accepts lists, dims (as decimal text) and strings, which are lists
// of their characters.
func asList(fn string, v Value) (List, error) {
	switch v := v.(type) {
	case List:
		return v, nil
	case Dims:
		return lo.Map(v, func(n int, _ int) string { return strconv.Itoa(n) }), nil
	case Str:
		return lo.Map([]rune(string(v)), func(r rune, _ int) string { return string(r) }), nil
	default:
		return nil, &ValueError{Func: fn, Want: "list", Got: v}
	}
}

// asDims accepts Dims, a single Int, or comma separated decimal text ("4",
// "2,3"). Empty text is the scalar descriptor.
func asDims(fn string, v Value) (Dims, error) {
	switch v := v.(type) {
	case Dims:
		return v, nil
	case Int:
		return Dims{int(v)}, nil
	case Str:
		s := strings.TrimSpace(string(v))
		if s == "" {
			return Dims{}, nil
		}
		var out Dims
		for _, part := range strings.Split(s, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, &ValueError{Func: fn, Want: "dims", Got: v}
			}
			out = append(out, n)
		}
		return out, nil
	default:
		return nil, &ValueError{Func: fn, Want: "dims", Got: v}
	}
}

// asType requires a type.
func asType(fn string, v Value) (types.Type, error) {
	if t, ok := v.(TypeValue); ok {
		return t.Type, nil
	}
	return nil, &ValueError{Func: fn, Want: "type", Got: v}
}

// text renders a binding for a bare reference: strings as is, types by
// name.
func text(name string, v Value) (string, error) {
	switch v := v.(type) {
	case Str:
		return string(v), nil
	case TypeValue:
		return v.Type.Name(), nil
	default:
		return "", &ValueError{Func: name, Want: "string", Got: v}
	}
}
