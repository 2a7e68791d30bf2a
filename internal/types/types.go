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

// Package types is the type model of the generator: every concrete numeric
// type a template can be instantiated for, and the naming, construction,
// casting and operator conventions that go with it.
//
// Type is a closed sum of *Scalar, *Vector, *Matrix and *Rotor. Functions in
// this package switch over all four variants and panic on anything else, so
// a new variant has to be handled everywhere before it can be used.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrNoCast is returned when neither side of a cast declares a rule.
	ErrNoCast = errors.New("no cast rule")

	// ErrArity is returned when a constructor gets more arguments than the
	// type has components.
	ErrArity = errors.New("constructor arity")
)

// Type is one concrete numeric type.
type Type interface {
	// Name is the unique C type name, e.g. "f32", "Vec3f", "Mat4x4d".
	Name() string
	// Base is the scalar type the components are made of.
	Base() *Scalar
	sealed()
}

// Scalar is a single value of a base kind.
type Scalar struct {
	Kind *Kind
}

// Vector is an N-component vector, 2 <= N <= 4.
type Vector struct {
	Elem *Scalar
	N    int
}

// Matrix is a Rows x Cols matrix stored row major.
type Matrix struct {
	Elem       *Scalar
	Rows, Cols int
}

// Rotor is a 3D rotor: a scalar plus the three bivector components.
type Rotor struct {
	Elem *Scalar
}

// RotorComponents are the field names of a rotor, in storage order.
var RotorComponents = []string{"s", "xy", "yz", "zx"}

// vectorFields are the field names of vector components.
const vectorFields = "xyzw"

func (*Scalar) sealed() {}
func (*Vector) sealed() {}
func (*Matrix) sealed() {}
func (*Rotor) sealed()  {}

func (t *Scalar) Base() *Scalar { return t }
func (t *Vector) Base() *Scalar { return t.Elem }
func (t *Matrix) Base() *Scalar { return t.Elem }
func (t *Rotor) Base() *Scalar  { return t.Elem }

// prefix title-cases a category word for use in composite type names.
// Casers carry state, so each call gets its own.
func prefix(word string) string {
	return cases.Title(language.English).String(word)
}

func (t *Scalar) Name() string { return t.Kind.Name }

func (t *Vector) Name() string {
	return prefix("vec") + strconv.Itoa(t.N) + t.Elem.Kind.Initial
}

func (t *Matrix) Name() string {
	return fmt.Sprintf("%s%dx%d%s", prefix("mat"), t.Rows, t.Cols, t.Elem.Kind.Initial)
}

func (t *Rotor) Name() string {
	return prefix("rotor") + "3" + t.Elem.Kind.Initial
}

func (t *Scalar) String() string { return t.Name() }
func (t *Vector) String() string { return t.Name() }
func (t *Matrix) String() string { return t.Name() }
func (t *Rotor) String() string  { return t.Name() }

// NewScalar returns the scalar type of kind k.
func NewScalar(k *Kind) *Scalar { return &Scalar{Kind: k} }

// NewVector returns an n-component vector over k.
func NewVector(k *Kind, n int) *Vector {
	if n < 2 || n > len(vectorFields) {
		panic(fmt.Sprintf("types: vector dimension %d out of range", n))
	}
	return &Vector{Elem: NewScalar(k), N: n}
}

// NewMatrix returns a rows x cols matrix over k.
func NewMatrix(k *Kind, rows, cols int) *Matrix {
	return &Matrix{Elem: NewScalar(k), Rows: rows, Cols: cols}
}

// NewRotor returns the rotor over k.
func NewRotor(k *Kind) *Rotor { return &Rotor{Elem: NewScalar(k)} }

// unknownVariant is the panic message for a Type outside the closed set.
func unknownVariant(t Type) string {
	return fmt.Sprintf("types: unknown Type variant %T", t)
}

// Dim returns the dimension descriptor: () for scalars, (n) for vectors,
// (rows, cols) for matrices and (4) for rotors.
func Dim(t Type) []int {
	switch t := t.(type) {
	case *Scalar:
		return []int{}
	case *Vector:
		return []int{t.N}
	case *Matrix:
		return []int{t.Rows, t.Cols}
	case *Rotor:
		return []int{len(RotorComponents)}
	default:
		panic(unknownVariant(t))
	}
}

// Components returns the member access suffix of every component in
// storage order, e.g. ".x", ".vs[1][2]", ".xy". A scalar has a single empty
// suffix.
func Components(t Type) []string {
	switch t := t.(type) {
	case *Scalar:
		return []string{""}
	case *Vector:
		out := make([]string, t.N)
		for i := range t.N {
			out[i] = "." + vectorFields[i:i+1]
		}
		return out
	case *Matrix:
		out := make([]string, 0, t.Rows*t.Cols)
		for i := range t.Rows {
			for j := range t.Cols {
				out = append(out, fmt.Sprintf(".vs[%d][%d]", i, j))
			}
		}
		return out
	case *Rotor:
		out := make([]string, len(RotorComponents))
		for i, c := range RotorComponents {
			out[i] = "." + c
		}
		return out
	default:
		panic(unknownVariant(t))
	}
}

// FuncName returns the generated function name for op on t, e.g.
// "Vec3f_add" or "fx32_mul".
func FuncName(t Type, op string) string {
	switch t := t.(type) {
	case *Scalar, *Vector, *Matrix, *Rotor:
		return t.Name() + "_" + op
	default:
		panic(unknownVariant(t))
	}
}

// Ctor builds a constructor expression from scalar argument expressions.
// Composites use a compound literal; missing trailing components are zero
// initialized by C.
func Ctor(t Type, args []string) (string, error) {
	switch t := t.(type) {
	case *Scalar:
		if len(args) != 1 {
			return "", fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArity, t.Name(), len(args))
		}
		return args[0], nil
	case *Vector, *Matrix, *Rotor:
		if n := len(Components(t)); len(args) > n {
			return "", fmt.Errorf("%w: %s takes at most %d arguments, got %d", ErrArity, t.Name(), n, len(args))
		}
		return "(" + t.Name() + "){{ " + strings.Join(args, ", ") + " }}", nil
	default:
		panic(unknownVariant(t))
	}
}

// Zero returns the zero value expression of t.
func Zero(t Type) string {
	switch t := t.(type) {
	case *Scalar:
		return t.Kind.Zero
	case *Vector, *Matrix, *Rotor:
		return broadcast(t, t.Base().Kind.Zero)
	default:
		panic(unknownVariant(t))
	}
}

// One returns the multiplicative identity of t: all ones for vectors, the
// identity matrix, and the identity rotor.
func One(t Type) string {
	switch t := t.(type) {
	case *Scalar:
		return t.Kind.One
	case *Vector:
		return broadcast(t, t.Elem.Kind.One)
	case *Matrix:
		args := make([]string, 0, t.Rows*t.Cols)
		for i := range t.Rows {
			for j := range t.Cols {
				if i == j {
					args = append(args, t.Elem.Kind.One)
				} else {
					args = append(args, t.Elem.Kind.Zero)
				}
			}
		}
		return mustCtor(t, args)
	case *Rotor:
		k := t.Elem.Kind
		return mustCtor(t, []string{k.One, k.Zero, k.Zero, k.Zero})
	default:
		panic(unknownVariant(t))
	}
}

// Epsilon returns the comparison tolerance of t's base kind.
func Epsilon(t Type) string {
	return t.Base().Kind.Epsilon
}

func broadcast(t Type, v string) string {
	args := make([]string, len(Components(t)))
	for i := range args {
		args[i] = v
	}
	return mustCtor(t, args)
}

// mustCtor is Ctor for argument lists built from Components, which always
// fit.
func mustCtor(t Type, args []string) string {
	s, err := Ctor(t, args)
	if err != nil {
		panic(err)
	}
	return s
}

// Tags returns the applicability tags of t: its category letter, the
// category with dimensions, that plus the base initial, and the category
// with the base initial. Vec3f yields {"v", "v3", "v3f", "vf"}.
func Tags(t Type) []string {
	switch t := t.(type) {
	case *Scalar:
		return []string{"s", "s" + t.Kind.Initial}
	case *Vector:
		d := "v" + strconv.Itoa(t.N)
		i := t.Elem.Kind.Initial
		return []string{"v", d, d + i, "v" + i}
	case *Matrix:
		d := fmt.Sprintf("m%dx%d", t.Rows, t.Cols)
		i := t.Elem.Kind.Initial
		return []string{"m", d, d + i, "m" + i}
	case *Rotor:
		return []string{"r", "r" + t.Elem.Kind.Initial}
	default:
		panic(unknownVariant(t))
	}
}

// Category returns the one-letter category of t used in tags.
func Category(t Type) string {
	switch t.(type) {
	case *Scalar:
		return "s"
	case *Vector:
		return "v"
	case *Matrix:
		return "m"
	case *Rotor:
		return "r"
	default:
		panic(unknownVariant(t))
	}
}
