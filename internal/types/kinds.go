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

package types

import (
	"fmt"
	"strings"
)

// Kind describes a base numeric representation: its C spelling, literal
// forms, native operators and conversion rules. Every concrete Type is built
// on exactly one Kind.
type Kind struct {
	Name       string // "f32", "f64", "fx32"
	Initial    string // "f", "d", "x" (used in composite names and tags)
	CType      string // "float", "double", "int32_t"
	Float      bool   // has libm functions and native arithmetic
	MathSuffix string // libm precision suffix: "f" for sqrtf, "" for sqrt

	Zero    string
	One     string
	Epsilon string

	// Ops maps canonical operation names to a native infix symbol.
	// Operations missing from Ops resolve to generated function calls.
	Ops map[string]string

	// Rename maps a canonical op to another canonical op before lookup.
	Rename map[string]string

	// CastFrom maps a source kind name to a printf pattern producing a
	// value of this kind. CastTo maps a destination kind name to a pattern
	// converting a value of this kind. Only one direction needs to exist
	// for a pair to be castable.
	CastFrom map[string]string
	CastTo   map[string]string
}

// floatOps are the infix operators C provides for float and double.
var floatOps = map[string]string{
	"neg":  "-",
	"add":  "+",
	"sub":  "-",
	"muls": "*",
	"mul":  "*",
	"dot":  "*",
	"div":  "/",
	"lt":   "<",
	"gt":   ">",
	"le":   "<=",
	"ge":   ">=",
	"eq":   "==",
	"ne":   "!=",
}

// F32 returns the single-precision float kind.
func F32() *Kind {
	return &Kind{
		Name:       "f32",
		Initial:    "f",
		CType:      "float",
		Float:      true,
		MathSuffix: "f",
		Zero:       "0.0f",
		One:        "1.0f",
		Epsilon:    "0.0000001f",
		Ops:        floatOps,
		CastFrom:   map[string]string{"f64": "(f32)(%s)"},
	}
}

// F64 returns the double-precision float kind.
func F64() *Kind {
	return &Kind{
		Name:     "f64",
		Initial:  "d",
		CType:    "double",
		Float:    true,
		Zero:     "0.0",
		One:      "1.0",
		Epsilon:  "0.00000001",
		Ops:      floatOps,
		CastFrom: map[string]string{"f32": "(f64)(%s)"},
	}
}

// FX32 returns the Q16.16 fixed-point kind. Addition, subtraction and
// comparisons are plain integer operators; products and quotients need
// rescaling and go through fx32_mul / fx32_div.
func FX32() *Kind {
	return &Kind{
		Name:    "fx32",
		Initial: "x",
		CType:   "int32_t",
		Zero:    "((fx32)0)",
		One:     "((fx32)0x10000)",
		Epsilon: "((fx32)1)",
		Ops: map[string]string{
			"neg": "-",
			"add": "+",
			"sub": "-",
			"lt":  "<",
			"gt":  ">",
			"le":  "<=",
			"ge":  ">=",
			"eq":  "==",
			"ne":  "!=",
		},
		Rename: map[string]string{"muls": "mul", "dot": "mul"},
		CastFrom: map[string]string{
			"f32": "((fx32)((%s) * 65536.0f))",
			"f64": "((fx32)((%s) * 65536.0))",
		},
		CastTo: map[string]string{
			"f32": "((f32)(%s) / 65536.0f)",
			"f64": "((f64)(%s) / 65536.0)",
		},
	}
}

// kindNames lists the built-in kinds in generation order.
var kindNames = []string{"f32", "f64", "fx32"}

// GetKind returns the built-in kind with the given name.
func GetKind(name string) (*Kind, error) {
	switch name {
	case "f32":
		return F32(), nil
	case "f64":
		return F64(), nil
	case "fx32":
		return FX32(), nil
	default:
		return nil, fmt.Errorf("unknown kind: %s (valid: %s)", name, strings.Join(kindNames, ", "))
	}
}

// DefaultKinds returns every built-in kind in generation order.
func DefaultKinds() []*Kind {
	return []*Kind{F32(), F64(), FX32()}
}

// castFrom renders v (of kind src) as kind k using k's own rule.
func (k *Kind) castFrom(v string, src *Kind) (string, bool) {
	if k.Name == src.Name {
		return v, true
	}
	pat, ok := k.CastFrom[src.Name]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(pat, v), true
}

// castTo renders v (of kind k) as kind dst using k's reverse rule.
func (k *Kind) castTo(v string, dst *Kind) (string, bool) {
	pat, ok := k.CastTo[dst.Name]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(pat, v), true
}
