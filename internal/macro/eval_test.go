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
	"errors"
	"testing"

	"github.com/ajroetker/mathgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	f32     = types.NewScalar(types.F32())
	f64     = types.NewScalar(types.F64())
	fx32    = types.NewScalar(types.FX32())
	vec2f   = types.NewVector(types.F32(), 2)
	vec3f   = types.NewVector(types.F32(), 3)
	mat2x2f = types.NewMatrix(types.F32(), 2, 2)
	mat2x3f = types.NewMatrix(types.F32(), 2, 3)
	rotor3f = types.NewRotor(types.F32())
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		ty   types.Type
		vars Context
		src  string
		want string
	}{
		{
			name: "IntegerArithmetic",
			ty:   f32,
			src:  "`[3,2,$Add]",
			want: "5",
		},
		{
			name: "ElementWiseBinop",
			ty:   vec3f,
			src:  "`[`[a{0},b{0},$Tb,add,$Gbinop],$ElWise,$SeqC]",
			want: "a.x + b.x, a.y + b.y, a.z + b.z",
		},
		{
			name: "Variables",
			ty:   vec3f,
			vars: Context{"T": TypeValue{Type: vec3f}, "n": Str("1")},
			src:  "`T `n.0",
			want: "Vec3f 10",
		},
		{
			name: "TypeRef",
			ty:   vec3f,
			src:  "`$add(a, b)",
			want: "Vec3f_add(a, b)",
		},
		{
			name: "Constructor",
			ty:   vec3f,
			src:  "`[v{0},$ElWise,$ctor]",
			want: "(Vec3f){{ v.x, v.y, v.z }}",
		},
		{
			name: "NativeBinop",
			ty:   f32,
			src:  "`[a,b,$add]",
			want: "a + b",
		},
		{
			name: "FixedPointMul",
			ty:   fx32,
			src:  "`[a,b,$dot]",
			want: "fx32_mul(a, b)",
		},
		{
			name: "VectorBinop",
			ty:   vec3f,
			src:  "`[a,s,$muls]",
			want: "Vec3f_mul(a, s)",
		},
		{
			name: "SwizzlePrefix",
			ty:   vec3f,
			src:  "`[xyzw,$Dim,0,$At,$CutEnd,$SeqJ]",
			want: "xyz",
		},
		{
			name: "MatrixIndices",
			ty:   mat2x2f,
			src:  "`[m{0},$Dim,.vs,$Dims,$SeqC]",
			want: "m.vs[0][0], m.vs[0][1], m.vs[1][0], m.vs[1][1]",
		},
		{
			name: "ScalarIndices",
			ty:   f32,
			src:  "`[x{0},$Dim,.vs,$Dims,$SeqC]",
			want: "x",
		},
		{
			name: "RangeMap",
			ty:   f32,
			src:  "`[0,3,$Range,a{0},$Map,$SeqP]",
			want: "a0 + a1 + a2",
		},
		{
			name: "Fold",
			ty:   f32,
			src:  "`[0,3,$Range,({0} * {1}),$Fold]",
			want: "((0 * 1) * 2)",
		},
		{
			name: "EmptyFold",
			ty:   f32,
			src:  "`[x,$EList,{0}{1},$Fold]",
			want: "",
		},
		{
			name: "Negate",
			ty:   f32,
			src:  "`[x,$neg] `[-x,$neg]",
			want: "-x -(-x)",
		},
		{
			name: "VectorNegate",
			ty:   vec3f,
			src:  "`[x,$neg]",
			want: "Vec3f_neg(x)",
		},
		{
			name: "Gunop",
			ty:   vec3f,
			src:  "`[v.x,$Tb,neg,$Gunop]",
			want: "-v.x",
		},
		{
			name: "MathFloat",
			ty:   vec3f,
			src:  "`[x,$sqrt] `[x,$abs]",
			want: "sqrtf(x) fabsf(x)",
		},
		{
			name: "MathDouble",
			ty:   f64,
			src:  "`[x,$cos]",
			want: "cos(x)",
		},
		{
			name: "MathFixed",
			ty:   fx32,
			src:  "`[x,$sqrt]",
			want: "fx32_sqrt(x)",
		},
		{
			name: "Constants",
			ty:   vec3f,
			src:  "`[$zero] `[$one] `[$Ty,$Zero]",
			want: "0.0f 1.0f (Vec3f){{ 0.0f, 0.0f, 0.0f }}",
		},
		{
			name: "RotorIdentity",
			ty:   rotor3f,
			src:  "`[$Ty,$One]",
			want: "(Rotor3f){{ 1.0f, 0.0f, 0.0f, 0.0f }}",
		},
		{
			name: "FixedEpsilon",
			ty:   fx32,
			src:  "`[$eps]",
			want: "((fx32)1)",
		},
		{
			name: "Cast",
			ty:   f32,
			vars: Context{"Ta": TypeValue{Type: f32}, "Tb": TypeValue{Type: f64}},
			src:  "`[v,Tb,$Var,Ta,$Var,$Cast]",
			want: "(f32)(v)",
		},
		{
			name: "Literal",
			ty:   f32,
			vars: Context{"x": Str("expanded")},
			src:  "`[`x,$Lit] `[1,2,$Add,$Lit]",
			want: "`x 3",
		},
		{
			name: "LiteralUnbound",
			ty:   f32,
			src:  "`[`undefined,$Lit] `[`[`missing,$Str],$Lit]",
			want: "`undefined `[`missing,$Str]",
		},
		{
			name: "ScalarDimString",
			ty:   f32,
			src:  "<`[$Dim,$Str]><`[$Ty,$TDim,$Str]>",
			want: "<><>",
		},
		{
			name: "VectorDimString",
			ty:   vec3f,
			src:  "`[$Dim,$Str]",
			want: "3",
		},
		{
			name: "TypeIntrospection",
			ty:   mat2x3f,
			src:  "`[$Dim,$Str] `[$Ty,$TName] `[$Tb,$TName] `[$Ty,$TDim,$Str]",
			want: "2,3 Mat2x3f f32 2,3",
		},
		{
			name: "Lists",
			ty:   f32,
			src:  "`[a,$SList,b,$SList,$Add,$SeqC] `[abc,1,$At] `[abcde,1,3,$Cut,$SeqJ] `[abcd,1,$CutStart,$SeqJ]",
			want: "a, b b bc bcd",
		},
		{
			name: "IntegerOps",
			ty:   f32,
			src:  "`[7,2,$Div] `[2,3,$Mul] `[2,3,$Sub] `[ 4 ,$Int,$Str]",
			want: "3 6 -1 4",
		},
		{
			name: "Paren",
			ty:   f32,
			src:  "`[`[a,b,$add],$Paren]",
			want: "(a + b)",
		},
		{
			name: "TypedCtor",
			ty:   vec3f,
			src:  "`[$Tb,a,$SList,$TCtor]",
			want: "a",
		},
		{
			name: "EscapedBracket",
			ty:   mat2x2f,
			src:  "`[m->vs[0\\]{0},$ElWise,$SeqC]",
			want: "m->vs[0].vs[0][0], m->vs[0].vs[0][1], m->vs[0].vs[1][0], m->vs[0].vs[1][1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Evaluator{Type: tt.ty, Vars: tt.vars}
			got, err := e.Expand(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStackUnderflow(t *testing.T) {
	e := &Evaluator{Type: f32}
	_, err := e.Expand("`[$add]")
	require.ErrorIs(t, err, ErrStackUnderflow)

	var su *StackUnderflowError
	require.True(t, errors.As(err, &su))
	assert.Equal(t, "add", su.Func)
	assert.Equal(t, 2, su.Arity)
	assert.Equal(t, 0, su.Available)
	assert.Equal(t, "stack underflow for add: expected 2 operands but only 0 available", err.Error())
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name   string
		ty     types.Type
		src    string
		target error
	}{
		{"UnknownVariable", f32, "`nope", ErrUnknownVariable},
		{"UnknownVarBuiltin", f32, "`[nope,$Var]", ErrUnknownVariable},
		{"TwoValues", f32, "`[a,b]", ErrStackSize},
		{"NoValues", f32, "`[x,$EList,$EList]", ErrNonString},
		{"NonStringResult", vec3f, "`[$Dim]", ErrNonString},
		{"IndexOutOfRange", f32, "`[abc,5,$At]", ErrNonString},
		{"DivideByZero", f32, "`[4,0,$Div]", ErrNonString},
		{"NotAnInt", f32, "`[x,1,$Add]", ErrNonString},
		{"NotAType", f32, "`[a,$TName]", ErrNonString},
		{"Malformed", f32, "`[a,b", ErrMalformedToken},
		{"BadPattern", vec3f, "`[{1},$ElWise,$SeqC]", ErrFormat},
		{"CtorArity", vec2f, "`[abc,$ctor]", types.ErrArity},
		{"NoCast", vec3f, "`[v,$Tb,$Ty,$Cast]", types.ErrNoCast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Evaluator{Type: tt.ty, Vars: Context{}}
			_, err := e.Expand(tt.src)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestNestedErrorsPropagate(t *testing.T) {
	e := &Evaluator{Type: f32}
	_, err := e.Expand("`[`[`[$sub],$Paren],$Paren]")
	var su *StackUnderflowError
	require.True(t, errors.As(err, &su))
	assert.Equal(t, "sub", su.Func)
}

func TestUnknownVariableMessage(t *testing.T) {
	e := &Evaluator{Type: f32, Vars: Context{"T": TypeValue{Type: f32}}}
	_, err := e.Expand("`T `Q")
	assert.EqualError(t, err, "unknown variable: Q")
}

func TestBuiltinLookup(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range Builtins() {
		name := b.Name()
		require.NotEmpty(t, name, "builtin %d has no name", int(b))
		require.False(t, seen[name], "duplicate builtin %s", name)
		seen[name] = true

		got, ok := LookupBuiltin(name)
		require.True(t, ok)
		assert.Equal(t, b, got)
		assert.Equal(t, "$"+name, b.String())
	}

	_, ok := LookupBuiltin("add")
	assert.False(t, ok, "operators are not builtins")
}

// builtinArgs holds well-formed arguments for every builtin, evaluated with
// a Vec3f current type.
var builtinArgs = map[Builtin][]Value{
	BuiltinElWise:   {Str("a{0}")},
	BuiltinDims:     {Str("{0}"), Dims{2}, Str("v")},
	BuiltinCtor:     {List{"a", "b", "c"}},
	BuiltinCutEnd:   {List{"a", "b"}, Int(1)},
	BuiltinCutStart: {List{"a", "b"}, Int(1)},
	BuiltinCut:      {List{"a", "b"}, Int(0), Int(1)},
	BuiltinSeqS:     {List{"a"}},
	BuiltinSeqC:     {List{"a"}},
	BuiltinSeqP:     {List{"a"}},
	BuiltinSeqJ:     {List{"a"}},
	BuiltinSList:    {Str("a")},
	BuiltinEList:    {Str("a")},
	BuiltinAt:       {List{"a"}, Int(0)},
	BuiltinMap:      {List{"a"}, Str("{0}")},
	BuiltinFold:     {List{"a"}, Str("{0}{1}")},
	BuiltinRange:    {Int(0), Int(2)},
	BuiltinInt:      {Str("1")},
	BuiltinStr:      {Int(1)},
	BuiltinDim:      {},
	BuiltinAdd:      {Int(4), Int(2)},
	BuiltinSub:      {Int(4), Int(2)},
	BuiltinMul:      {Int(4), Int(2)},
	BuiltinDiv:      {Int(4), Int(2)},
	BuiltinTb:       {},
	BuiltinTy:       {},
	BuiltinVar:      {Str("x")},
	BuiltinTName:    {TypeValue{Type: vec3f}},
	BuiltinTDim:     {TypeValue{Type: vec3f}},
	BuiltinTCtor:    {TypeValue{Type: vec3f}, List{"a"}},
	BuiltinGbinop:   {Str("a"), Str("b"), TypeValue{Type: f32}, Str("add")},
	BuiltinGunop:    {Str("a"), TypeValue{Type: f32}, Str("neg")},
	BuiltinNeg:      {Str("a")},
	BuiltinMag2:     {Str("a")},
	BuiltinMag:      {Str("a")},
	BuiltinNorm:     {Str("a")},
	BuiltinTypeZero: {TypeValue{Type: vec3f}},
	BuiltinTypeOne:  {TypeValue{Type: vec3f}},
	BuiltinZero:     {},
	BuiltinOne:      {},
	BuiltinEps:      {},
	BuiltinCast:     {Str("v"), TypeValue{Type: f64}, TypeValue{Type: f32}},
	BuiltinSqrt:     {Str("x")},
	BuiltinAbs:      {Str("x")},
	BuiltinFmod:     {Str("x")},
	BuiltinTan:      {Str("x")},
	BuiltinCos:      {Str("x")},
	BuiltinSin:      {Str("x")},
	BuiltinParen:    {Str("x")},
	BuiltinLit:      {Str("x")},
}

// TestBuiltinArity checks that every builtin pops exactly its declared
// arity and pushes one value, and that one value short is an underflow.
func TestBuiltinArity(t *testing.T) {
	require.Len(t, builtinArgs, len(Builtins()))

	e := &Evaluator{Type: vec3f, Vars: Context{"x": Str("1")}}
	sentinel := entry{v: Str("sentinel")}

	for _, b := range Builtins() {
		t.Run(b.Name(), func(t *testing.T) {
			args := builtinArgs[b]
			require.Len(t, args, b.Arity())

			stack := []entry{sentinel}
			for _, v := range args {
				stack = append(stack, entry{v: v})
			}
			got, err := e.call(b.Name(), stack)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, sentinel, got[0])
			assert.NotNil(t, got[1].v)

			if b.Arity() == 0 {
				return
			}
			short := make([]entry, 0, b.Arity()-1)
			for _, v := range args[1:] {
				short = append(short, entry{v: v})
			}
			_, err = e.call(b.Name(), short)
			var su *StackUnderflowError
			require.True(t, errors.As(err, &su))
			assert.Equal(t, b.Arity(), su.Arity)
			assert.Equal(t, b.Arity()-1, su.Available)
		})
	}
}

func TestBinopArity(t *testing.T) {
	e := &Evaluator{Type: vec3f}
	got, err := e.call("cross", []entry{{v: Str("a")}, {v: Str("b")}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Str("Vec3f_cross(a, b)"), got[0].v)

	_, err = e.call("cross", []entry{{v: Str("a")}})
	assert.ErrorIs(t, err, ErrStackUnderflow)
}
