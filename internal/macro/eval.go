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

// Package macro expands the backtick macro notation used in templates.
//
// Three token shapes are recognized in template text:
//
//	`name        value of name in the context (a trailing '.' is dropped)
//	`$name       name formatted through the current type, e.g. Vec3f_name
//	`[a,b,$F]    postfix expression; operands are pushed, $F pops its
//	             arguments and pushes its result
//
// Inside an expression, operands are split on top-level commas, so a
// nested `[...] travels as one operand. "\]" is a ']' that does not end the
// expression.
package macro

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ajroetker/mathgen/internal/types"
	"github.com/samber/lo"
)

// Evaluator expands templates for one concrete type.
type Evaluator struct {
	Type types.Type
	Vars Context
}

// Expand replaces every macro token in src with its expansion.
func (e *Evaluator) Expand(src string) (string, error) {
	sc := NewScanner(src)
	var sb strings.Builder
	for sc.Scan() {
		tok := sc.Token()
		switch tok.Kind {
		case TokenText:
			sb.WriteString(tok.Text)
		case TokenVar:
			v, ok := e.Vars[tok.Text]
			if !ok {
				return "", &UnknownVariableError{Name: tok.Text}
			}
			s, err := text(tok.Text, v)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		case TokenTypeRef:
			sb.WriteString(types.FuncName(e.Type, tok.Text))
		case TokenExpr:
			s, err := e.Eval(tok.Text)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		default:
			panic(fmt.Sprintf("macro: unexpected token kind %v", tok.Kind))
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// entry is a stack slot. raw is the operand text a literal was pushed
// from, before expansion; computed values have none.
type entry struct {
	v   Value
	raw string
}

// Eval evaluates the body of a bracketed expression (without the
// surrounding `[ and ]) and returns the single string it reduces to.
func (e *Evaluator) Eval(body string) (string, error) {
	operands, err := SplitOperands(body)
	if err != nil {
		return "", err
	}

	for i := range operands {
		operands[i] = strings.TrimSpace(operands[i])
	}

	var stack []entry
	for i, op := range operands {
		if name, ok := funcOperand(op); ok {
			stack, err = e.call(name, stack)
			if err != nil {
				return "", err
			}
			continue
		}
		// An operand quoted by $Lit is never expanded.
		if i+1 < len(operands) && isLitCall(operands[i+1]) {
			stack = append(stack, entry{v: Str(op), raw: op})
			continue
		}
		s, err := e.Expand(op)
		if err != nil {
			return "", err
		}
		stack = append(stack, entry{v: Str(s), raw: op})
	}

	if len(stack) != 1 {
		return "", &StackSizeError{Expr: body, Depth: len(stack)}
	}
	return asString("["+body+"]", stack[0].v)
}

func isLitCall(op string) bool {
	name, ok := funcOperand(op)
	if !ok {
		return false
	}
	b, ok := LookupBuiltin(name)
	return ok && b == BuiltinLit
}

// funcOperand reports whether op is a function token and returns its name.
func funcOperand(op string) (string, bool) {
	if len(op) < 2 || op[0] != FuncMarker {
		return "", false
	}
	name := op[1:]
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isLetter(c) || c == '_' || i > 0 && '0' <= c && c <= '9' {
			continue
		}
		return "", false
	}
	return name, true
}

// call pops the arguments of name, applies it and pushes the result.
func (e *Evaluator) call(name string, stack []entry) ([]entry, error) {
	b, isBuiltin := LookupBuiltin(name)
	arity := 2
	if isBuiltin {
		arity = b.Arity()
	}
	if len(stack) < arity {
		return nil, &StackUnderflowError{Func: name, Arity: arity, Available: len(stack)}
	}

	// The last arity entries, oldest first, are the arguments in source order.
	split := len(stack) - arity
	args := stack[split:]

	var v Value
	var err error
	if isBuiltin {
		v, err = e.apply(b, args)
	} else {
		v, err = e.binop(name, args)
	}
	if err != nil {
		return nil, fmt.Errorf("$%s: %w", name, err)
	}
	return append(stack[:split], entry{v: v}), nil
}

// binop applies an operator name that is not a builtin to the current type.
func (e *Evaluator) binop(name string, args []entry) (Value, error) {
	lhs, err := asString(name, args[0].v)
	if err != nil {
		return nil, err
	}
	rhs, err := asString(name, args[1].v)
	if err != nil {
		return nil, err
	}
	return Str(types.Binop(e.Type, name, lhs, rhs)), nil
}

// apply runs builtin b on args, which holds exactly b.Arity() entries.
func (e *Evaluator) apply(b Builtin, args []entry) (Value, error) {
	name := b.Name()
	arg := func(i int) Value { return args[i].v }

	switch b {
	case BuiltinElWise:
		pat, err := asString(name, arg(0))
		if err != nil {
			return nil, err
		}
		return formatEach(pat, types.Components(e.Type))

	case BuiltinDims:
		pat, err := asString(name, arg(0))
		if err != nil {
			return nil, err
		}
		dims, err := asDims(name, arg(1))
		if err != nil {
			return nil, err
		}
		prefix, err := asString(name, arg(2))
		if err != nil {
			return nil, err
		}
		return formatEach(pat, indexRefs(dims, prefix))

	case BuiltinCtor:
		l, err := asList(name, arg(0))
		if err != nil {
			return nil, err
		}
		s, err := types.Ctor(e.Type, l)
		return Str(s), err

	case BuiltinCutEnd, BuiltinCutStart:
		l, err := asList(name, arg(0))
		if err != nil {
			return nil, err
		}
		n, err := asInt(name, arg(1))
		if err != nil {
			return nil, err
		}
		n = max(n, 0)
		if b == BuiltinCutEnd {
			return List(lo.Slice(l, 0, n)), nil
		}
		return List(lo.Drop(l, n)), nil

	case BuiltinCut:
		l, err := asList(name, arg(0))
		if err != nil {
			return nil, err
		}
		from, err := asInt(name, arg(1))
		if err != nil {
			return nil, err
		}
		to, err := asInt(name, arg(2))
		if err != nil {
			return nil, err
		}
		return List(lo.Slice(l, from, to)), nil

	case BuiltinSeqS, BuiltinSeqC, BuiltinSeqP, BuiltinSeqJ:
		l, err := asList(name, arg(0))
		if err != nil {
			return nil, err
		}
		return Str(strings.Join(l, seqSeparators[b])), nil

	case BuiltinSList:
		s, err := asString(name, arg(0))
		if err != nil {
			return nil, err
		}
		return List{s}, nil

	case BuiltinEList:
		return List{}, nil

	case BuiltinAt:
		i, err := asInt(name, arg(1))
		if err != nil {
			return nil, err
		}
		if d, ok := arg(0).(Dims); ok {
			if i < 0 || i >= len(d) {
				return nil, outOfRange(name, i, len(d))
			}
			return Int(d[i]), nil
		}
		l, err := asList(name, arg(0))
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(l) {
			return nil, outOfRange(name, i, len(l))
		}
		return Str(l[i]), nil

	case BuiltinMap:
		l, err := asList(name, arg(0))
		if err != nil {
			return nil, err
		}
		pat, err := asString(name, arg(1))
		if err != nil {
			return nil, err
		}
		return formatEach(pat, l)

	case BuiltinFold:
		l, err := asList(name, arg(0))
		if err != nil {
			return nil, err
		}
		pat, err := asString(name, arg(1))
		if err != nil {
			return nil, err
		}
		if len(l) == 0 {
			return Str(""), nil
		}
		var ferr error
		acc := lo.Reduce(l[1:], func(acc string, s string, _ int) string {
			if ferr != nil {
				return acc
			}
			out, err := Format(pat, []string{acc, s}, nil)
			if err != nil {
				ferr = err
				return acc
			}
			return out
		}, l[0])
		if ferr != nil {
			return nil, ferr
		}
		return Str(acc), nil

	case BuiltinRange:
		a, err := asInt(name, arg(0))
		if err != nil {
			return nil, err
		}
		z, err := asInt(name, arg(1))
		if err != nil {
			return nil, err
		}
		if z <= a {
			return List{}, nil
		}
		return List(lo.Map(lo.RangeFrom(a, z-a), func(n int, _ int) string {
			return strconv.Itoa(n)
		})), nil

	case BuiltinInt:
		n, err := asInt(name, arg(0))
		return Int(n), err

	case BuiltinStr:
		switch v := arg(0).(type) {
		case Str:
			return v, nil
		case Int:
			return Str(strconv.Itoa(int(v))), nil
		case Dims:
			l, _ := asList(name, v)
			return Str(strings.Join(l, ",")), nil
		case TypeValue:
			return Str(v.Type.Name()), nil
		default:
			return nil, &ValueError{Func: name, Want: "string, int, dims or type", Got: v}
		}

	case BuiltinDim:
		return Dims(types.Dim(e.Type)), nil

	case BuiltinAdd:
		_, l0 := arg(0).(List)
		_, l1 := arg(1).(List)
		if l0 || l1 {
			a, err := asList(name, arg(0))
			if err != nil {
				return nil, err
			}
			z, err := asList(name, arg(1))
			if err != nil {
				return nil, err
			}
			return append(append(List{}, a...), z...), nil
		}
		return intOp(name, arg(0), arg(1), func(a, z int) (int, bool) { return a + z, true })

	case BuiltinSub:
		return intOp(name, arg(0), arg(1), func(a, z int) (int, bool) { return a - z, true })

	case BuiltinMul:
		return intOp(name, arg(0), arg(1), func(a, z int) (int, bool) { return a * z, true })

	case BuiltinDiv:
		return intOp(name, arg(0), arg(1), func(a, z int) (int, bool) {
			if z == 0 {
				return 0, false
			}
			return a / z, true
		})

	case BuiltinTb:
		return TypeValue{Type: e.Type.Base()}, nil

	case BuiltinTy:
		return TypeValue{Type: e.Type}, nil

	case BuiltinVar:
		s, err := asString(name, arg(0))
		if err != nil {
			return nil, err
		}
		v, ok := e.Vars[s]
		if !ok {
			return nil, &UnknownVariableError{Name: s}
		}
		return v, nil

	case BuiltinTName, BuiltinTDim:
		t, err := asType(name, arg(0))
		if err != nil {
			return nil, err
		}
		if b == BuiltinTName {
			return Str(t.Name()), nil
		}
		return Dims(types.Dim(t)), nil

	case BuiltinTCtor:
		t, err := asType(name, arg(0))
		if err != nil {
			return nil, err
		}
		l, err := asList(name, arg(1))
		if err != nil {
			return nil, err
		}
		s, err := types.Ctor(t, l)
		return Str(s), err

	case BuiltinGbinop:
		ss, err := asStrings(name, arg(0), arg(1), arg(3))
		if err != nil {
			return nil, err
		}
		t, err := asType(name, arg(2))
		if err != nil {
			return nil, err
		}
		return Str(types.Binop(t, ss[2], ss[0], ss[1])), nil

	case BuiltinGunop:
		ss, err := asStrings(name, arg(0), arg(2))
		if err != nil {
			return nil, err
		}
		t, err := asType(name, arg(1))
		if err != nil {
			return nil, err
		}
		return Str(types.Unop(t, ss[1], ss[0])), nil

	case BuiltinNeg, BuiltinMag2, BuiltinMag, BuiltinNorm:
		s, err := asString(name, arg(0))
		if err != nil {
			return nil, err
		}
		return Str(types.Unop(e.Type, name, s)), nil

	case BuiltinTypeZero, BuiltinTypeOne:
		t, err := asType(name, arg(0))
		if err != nil {
			return nil, err
		}
		if b == BuiltinTypeZero {
			return Str(types.Zero(t)), nil
		}
		return Str(types.One(t)), nil

	case BuiltinZero:
		return Str(types.Zero(e.Type.Base())), nil

	case BuiltinOne:
		return Str(types.One(e.Type.Base())), nil

	case BuiltinEps:
		return Str(types.Epsilon(e.Type)), nil

	case BuiltinCast:
		v, err := asString(name, arg(0))
		if err != nil {
			return nil, err
		}
		src, err := asType(name, arg(1))
		if err != nil {
			return nil, err
		}
		dst, err := asType(name, arg(2))
		if err != nil {
			return nil, err
		}
		s, err := types.Cast(v, src, dst)
		return Str(s), err

	case BuiltinSqrt, BuiltinAbs, BuiltinFmod, BuiltinTan, BuiltinCos, BuiltinSin:
		s, err := asString(name, arg(0))
		if err != nil {
			return nil, err
		}
		return Str(types.Math(e.Type, name, s)), nil

	case BuiltinParen:
		s, err := asString(name, arg(0))
		if err != nil {
			return nil, err
		}
		return Str("(" + s + ")"), nil

	case BuiltinLit:
		if args[0].raw != "" {
			return Str(args[0].raw), nil
		}
		s, err := asString(name, arg(0))
		return Str(s), err

	default:
		panic(fmt.Sprintf("macro: builtin %d not handled", b))
	}
}

var seqSeparators = map[Builtin]string{
	BuiltinSeqS: "; ",
	BuiltinSeqC: ", ",
	BuiltinSeqP: " + ",
	BuiltinSeqJ: "",
}

// formatEach formats pat once per element, the element as argument {0}.
func formatEach(pat string, elems []string) (List, error) {
	out := make(List, len(elems))
	for i, el := range elems {
		s, err := Format(pat, []string{el}, nil)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// indexRefs returns prefix[i][j]... for every index tuple of dims in row
// major order. A scalar descriptor has one empty reference.
func indexRefs(dims Dims, prefix string) []string {
	if len(dims) == 0 {
		return []string{""}
	}
	refs := []string{prefix}
	for _, d := range dims {
		next := make([]string, 0, len(refs)*d)
		for _, r := range refs {
			for i := range d {
				next = append(next, r+"["+strconv.Itoa(i)+"]")
			}
		}
		refs = next
	}
	return refs
}

func intOp(name string, a, z Value, f func(a, z int) (int, bool)) (Value, error) {
	x, err := asInt(name, a)
	if err != nil {
		return nil, err
	}
	y, err := asInt(name, z)
	if err != nil {
		return nil, err
	}
	r, ok := f(x, y)
	if !ok {
		return nil, &ValueError{Func: name, Want: "non-zero divisor", Got: z}
	}
	return Str(strconv.Itoa(r)), nil
}

// asStrings requires every value to be text.
func asStrings(name string, vs ...Value) ([]string, error) {
	out := make([]string, len(vs))
	for i, v := range vs {
		s, err := asString(name, v)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func outOfRange(name string, i, n int) error {
	return &ValueError{Func: name, Want: fmt.Sprintf("index in [0, %d)", n), Got: Int(i)}
}
