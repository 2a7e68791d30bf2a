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

// Builtin enumerates the functions an expression can call with $Name.
// Any other $name is a binary operator of the current type.
type Builtin int

const (
	// ===== Component expansion =====
	BuiltinElWise Builtin = iota // pattern -> one entry per component of the current type
	BuiltinDims                  // pattern, dims, prefix -> one entry per index tuple
	BuiltinCtor                  // list -> constructor of the current type

	// ===== Lists =====
	BuiltinCutEnd   // list, n -> first n
	BuiltinCutStart // list, n -> all but the first n
	BuiltinCut      // list, a, b -> [a, b)
	BuiltinSeqS     // list -> "a; b"
	BuiltinSeqC     // list -> "a, b"
	BuiltinSeqP     // list -> "a + b"
	BuiltinSeqJ     // list -> "ab"
	BuiltinSList    // s -> [s]
	BuiltinEList    // x -> []
	BuiltinAt       // list|dims, i -> element i
	BuiltinMap      // list, pattern -> pattern applied to each element
	BuiltinFold     // list, pattern -> left fold, {0} accumulator, {1} element
	BuiltinRange    // a, b -> [a, b)

	// ===== Coercions and integers =====
	BuiltinInt
	BuiltinStr
	BuiltinDim // -> dims of the current type
	BuiltinAdd // ints are summed, lists are concatenated
	BuiltinSub
	BuiltinMul
	BuiltinDiv

	// ===== Types and context =====
	BuiltinTb    // -> base scalar type of the current type
	BuiltinTy    // -> the current type
	BuiltinVar   // name -> context binding
	BuiltinTName // type -> name
	BuiltinTDim  // type -> dims
	BuiltinTCtor // type, list -> constructor

	// ===== Operators =====
	BuiltinGbinop // lhs, rhs, type, op
	BuiltinGunop  // v, type, op
	BuiltinNeg
	BuiltinMag2
	BuiltinMag
	BuiltinNorm

	// ===== Constants =====
	BuiltinTypeZero // type -> zero of that type
	BuiltinTypeOne  // type -> one of that type
	BuiltinZero     // -> zero of the base kind
	BuiltinOne      // -> one of the base kind
	BuiltinEps      // -> epsilon of the base kind

	// ===== Conversions and math =====
	BuiltinCast // v, src, dst
	BuiltinSqrt
	BuiltinAbs
	BuiltinFmod
	BuiltinTan
	BuiltinCos
	BuiltinSin

	// ===== Text =====
	BuiltinParen // x -> (x)
	BuiltinLit   // operand -> its source text, unexpanded

	numBuiltins
)

type builtinInfo struct {
	name  string
	arity int
}

var builtinTable = [numBuiltins]builtinInfo{
	BuiltinElWise: {"ElWise", 1},
	BuiltinDims:   {"Dims", 3},
	BuiltinCtor:   {"ctor", 1},

	BuiltinCutEnd:   {"CutEnd", 2},
	BuiltinCutStart: {"CutStart", 2},
	BuiltinCut:      {"Cut", 3},
	BuiltinSeqS:     {"SeqS", 1},
	BuiltinSeqC:     {"SeqC", 1},
	BuiltinSeqP:     {"SeqP", 1},
	BuiltinSeqJ:     {"SeqJ", 1},
	BuiltinSList:    {"SList", 1},
	BuiltinEList:    {"EList", 1},
	BuiltinAt:       {"At", 2},
	BuiltinMap:      {"Map", 2},
	BuiltinFold:     {"Fold", 2},
	BuiltinRange:    {"Range", 2},

	BuiltinInt: {"Int", 1},
	BuiltinStr: {"Str", 1},
	BuiltinDim: {"Dim", 0},
	BuiltinAdd: {"Add", 2},
	BuiltinSub: {"Sub", 2},
	BuiltinMul: {"Mul", 2},
	BuiltinDiv: {"Div", 2},

	BuiltinTb:    {"Tb", 0},
	BuiltinTy:    {"Ty", 0},
	BuiltinVar:   {"Var", 1},
	BuiltinTName: {"TName", 1},
	BuiltinTDim:  {"TDim", 1},
	BuiltinTCtor: {"TCtor", 2},

	BuiltinGbinop: {"Gbinop", 4},
	BuiltinGunop:  {"Gunop", 3},
	BuiltinNeg:    {"neg", 1},
	BuiltinMag2:   {"mag2", 1},
	BuiltinMag:    {"mag", 1},
	BuiltinNorm:   {"norm", 1},

	BuiltinTypeZero: {"Zero", 1},
	BuiltinTypeOne:  {"One", 1},
	BuiltinZero:     {"zero", 0},
	BuiltinOne:      {"one", 0},
	BuiltinEps:      {"eps", 0},

	BuiltinCast: {"Cast", 3},
	BuiltinSqrt: {"sqrt", 1},
	BuiltinAbs:  {"abs", 1},
	BuiltinFmod: {"fmod", 1},
	BuiltinTan:  {"tan", 1},
	BuiltinCos:  {"cos", 1},
	BuiltinSin:  {"sin", 1},

	BuiltinParen: {"Paren", 1},
	BuiltinLit:   {"Lit", 1},
}

var builtinsByName = func() map[string]Builtin {
	m := make(map[string]Builtin, numBuiltins)
	for b := range numBuiltins {
		m[builtinTable[b].name] = b
	}
	return m
}()

// LookupBuiltin returns the builtin called name.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtinsByName[name]
	return b, ok
}

// Name returns the name the builtin is called by.
func (b Builtin) Name() string { return builtinTable[b].name }

// Arity returns how many values the builtin pops.
func (b Builtin) Arity() int { return builtinTable[b].arity }

func (b Builtin) String() string { return "$" + b.Name() }

// Builtins returns every builtin in declaration order.
func Builtins() []Builtin {
	out := make([]Builtin, numBuiltins)
	for b := range numBuiltins {
		out[b] = b
	}
	return out
}
