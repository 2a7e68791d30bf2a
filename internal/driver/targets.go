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

package driver

import (
	"strconv"

	"github.com/ajroetker/mathgen/internal/macro"
	"github.com/ajroetker/mathgen/internal/types"
)

// Target is one instantiation point: a single type, or an ordered pair of
// same-shaped types for conversions. Templates are expanded with A as the
// current type.
type Target struct {
	A types.Type
	B types.Type // nil unless the target is a pair
}

// IsPair reports whether the target is a conversion pair.
func (t Target) IsPair() bool { return t.B != nil }

// Name identifies the target in logs and errors.
func (t Target) Name() string {
	if t.IsPair() {
		return t.A.Name() + "<-" + t.B.Name()
	}
	return t.A.Name()
}

// Tags returns the applicability tags of the target.
//
// Single types use types.Tags. Pairs carry "cast", the category
// ("casts", "castv"), the category with the vector size ("castv3") and the
// two base initials ("castfd").
func (t Target) Tags() []string {
	if !t.IsPair() {
		return types.Tags(t.A)
	}
	cat := "cast" + types.Category(t.A)
	tags := []string{"cast", cat}
	if v, ok := t.A.(*types.Vector); ok {
		tags = append(tags, cat+strconv.Itoa(v.N))
	}
	return append(tags, "cast"+t.A.Base().Kind.Initial+t.B.Base().Kind.Initial)
}

// Context returns a fresh variable context for expanding one template.
func (t Target) Context() macro.Context {
	if !t.IsPair() {
		ctx := bindings(t.A, "")
		if m, ok := t.A.(*types.Matrix); ok {
			ctx["V"] = macro.TypeValue{Type: types.NewVector(m.Elem.Kind, m.Cols)}
		}
		return ctx
	}
	ctx := bindings(t.A, "a")
	for k, v := range bindings(t.B, "b") {
		ctx[k] = v
	}
	return ctx
}

// bindings are T, B, I and eps for ty, each name suffixed with suffix.
// The suffix goes after the capital for T, B and I (Ta, Ba, Ia) and after
// the whole name for eps (epsa).
func bindings(ty types.Type, suffix string) macro.Context {
	base := ty.Base()
	return macro.Context{
		"T" + suffix:   macro.TypeValue{Type: ty},
		"B" + suffix:   macro.TypeValue{Type: base},
		"I" + suffix:   macro.Str(base.Kind.Initial),
		"eps" + suffix: macro.Str(types.Epsilon(ty)),
	}
}

// Fields returns the named fields available to template descriptions:
// name and base, or namea, basea, nameb and baseb for pairs.
func (t Target) Fields() map[string]string {
	if !t.IsPair() {
		return map[string]string{"name": t.A.Name(), "base": t.A.Base().Name()}
	}
	return map[string]string{
		"namea": t.A.Name(),
		"basea": t.A.Base().Name(),
		"nameb": t.B.Name(),
		"baseb": t.B.Base().Name(),
	}
}

// Targets enumerates every target of cfg in generation order. For each
// kind: the scalar, the vectors, the matrices (rows major), then the
// rotor. After all kinds, every ordered pair of distinct kinds yields a
// scalar pair followed by one vector pair per size.
func Targets(cfg Config) []Target {
	var out []Target
	kinds := cfg.Kinds()
	for _, k := range kinds {
		out = append(out, Target{A: types.NewScalar(k)})
		for _, n := range cfg.VectorDims() {
			out = append(out, Target{A: types.NewVector(k, n)})
		}
		for _, r := range cfg.MatrixDims() {
			for _, c := range cfg.MatrixDims() {
				out = append(out, Target{A: types.NewMatrix(k, r, c)})
			}
		}
		if cfg.Rotors() {
			out = append(out, Target{A: types.NewRotor(k)})
		}
	}

	for _, a := range kinds {
		for _, b := range kinds {
			if a.Name == b.Name {
				continue
			}
			out = append(out, Target{A: types.NewScalar(a), B: types.NewScalar(b)})
			for _, n := range cfg.VectorDims() {
				out = append(out, Target{A: types.NewVector(a, n), B: types.NewVector(b, n)})
			}
		}
	}
	return out
}
