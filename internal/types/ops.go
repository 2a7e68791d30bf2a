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

import "fmt"

// OpInfo describes how a canonical operation is spelled for one type.
// Exactly one of Symbol and Func is set.
type OpInfo struct {
	Name   string // canonical name after renaming
	Symbol string // native infix/prefix operator, e.g. "+"
	Func   string // generated function, e.g. "Vec3f_add"
}

// IsNative reports whether the operation is a C operator.
func (o OpInfo) IsNative() bool { return o.Symbol != "" }

// vectorRename sends scalar multiplication to the vector "mul" function,
// which takes a vector and a scalar.
var vectorRename = map[string]string{"muls": "mul"}

// scaleRename is used by matrices and rotors, whose "mul" is the
// matrix/geometric product.
var scaleRename = map[string]string{"muls": "scale"}

// Rename returns the canonical op that op stands for on t.
func Rename(t Type, op string) string {
	var table map[string]string
	switch t := t.(type) {
	case *Scalar:
		table = t.Kind.Rename
	case *Vector:
		table = vectorRename
	case *Matrix, *Rotor:
		table = scaleRename
	default:
		panic(unknownVariant(t))
	}
	if to, ok := table[op]; ok {
		return to
	}
	return op
}

// NativeOps returns the operator symbols of t itself. Only scalars have
// any; composite values are always handled by generated functions.
func NativeOps(t Type) map[string]string {
	switch t := t.(type) {
	case *Scalar:
		return t.Kind.Ops
	case *Vector, *Matrix, *Rotor:
		return nil
	default:
		panic(unknownVariant(t))
	}
}

// BaseOps returns the operator symbols of t's base scalar.
func BaseOps(t Type) map[string]string {
	return NativeOps(t.Base())
}

// Op resolves a canonical operation on t.
func Op(t Type, op string) OpInfo {
	name := Rename(t, op)
	if sym, ok := NativeOps(t)[name]; ok {
		return OpInfo{Name: name, Symbol: sym}
	}
	return OpInfo{Name: name, Func: FuncName(t, name)}
}

// Binop renders "lhs op rhs" for t.
func Binop(t Type, op, lhs, rhs string) string {
	info := Op(t, op)
	if info.IsNative() {
		return fmt.Sprintf("%s %s %s", lhs, info.Symbol, rhs)
	}
	return fmt.Sprintf("%s(%s, %s)", info.Func, lhs, rhs)
}

// Unop renders "op v" for t.
func Unop(t Type, op, v string) string {
	info := Op(t, op)
	if !info.IsNative() {
		return fmt.Sprintf("%s(%s)", info.Func, v)
	}
	// "--x" would be a decrement.
	if len(v) > 0 && (v[0] == '-' || v[0] == '+') {
		return fmt.Sprintf("%s(%s)", info.Symbol, v)
	}
	return info.Symbol + v
}

// libmNames maps math function names to their libm spelling where the two
// differ.
var libmNames = map[string]string{
	"abs": "fabs",
}

// Math renders a call of a transcendental function on a scalar of t's base
// kind. Float kinds call libm with the precision suffix (sqrtf, sqrt);
// other kinds call the generated function of the base scalar (fx32_sqrt).
func Math(t Type, fn, arg string) string {
	base := t.Base()
	if !base.Kind.Float {
		return fmt.Sprintf("%s(%s)", FuncName(base, fn), arg)
	}
	name := fn
	if n, ok := libmNames[fn]; ok {
		name = n
	}
	return fmt.Sprintf("%s%s(%s)", name, base.Kind.MathSuffix, arg)
}
