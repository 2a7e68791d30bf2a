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
	"slices"
)

// Cast renders the conversion of expression v from src to dst.
//
// dst's cast-from rule is tried first; if dst has none for src, src's
// cast-to rule is used instead. Composite types convert component-wise and
// require the same variant and shape on both sides.
func Cast(v string, src, dst Type) (string, error) {
	if s, ok := castFrom(v, src, dst); ok {
		return s, nil
	}
	if s, ok := castTo(v, src, dst); ok {
		return s, nil
	}
	return "", fmt.Errorf("%w from %s to %s", ErrNoCast, src.Name(), dst.Name())
}

func castFrom(v string, src, dst Type) (string, bool) {
	switch dst := dst.(type) {
	case *Scalar:
		s, ok := src.(*Scalar)
		if !ok {
			return "", false
		}
		return dst.Kind.castFrom(v, s.Kind)
	case *Vector, *Matrix, *Rotor:
		return castComponents(v, src, dst)
	default:
		panic(unknownVariant(dst))
	}
}

func castTo(v string, src, dst Type) (string, bool) {
	switch src := src.(type) {
	case *Scalar:
		d, ok := dst.(*Scalar)
		if !ok {
			return "", false
		}
		return src.Kind.castTo(v, d.Kind)
	case *Vector, *Matrix, *Rotor:
		// castFrom already tried both directions per component.
		return "", false
	default:
		panic(unknownVariant(src))
	}
}

// castComponents converts every component through the scalar rules and
// rebuilds the value with dst's constructor.
func castComponents(v string, src, dst Type) (string, bool) {
	if Category(src) != Category(dst) || !slices.Equal(Dim(src), Dim(dst)) {
		return "", false
	}
	comps := Components(src)
	args := make([]string, len(comps))
	for i, c := range comps {
		s, err := Cast(v+c, src.Base(), dst.Base())
		if err != nil {
			return "", false
		}
		args[i] = s
	}
	s, err := Ctor(dst, args)
	if err != nil {
		return "", false
	}
	return s, true
}
