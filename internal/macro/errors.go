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
	"fmt"
)

// Sentinel errors. Every error returned by this package matches one of
// these with errors.Is.
var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrMalformedToken  = errors.New("malformed token")
	ErrNonString       = errors.New("non-string result")
	ErrStackSize       = errors.New("malformed expression")
	ErrFormat          = errors.New("bad format pattern")
)

// UnknownVariableError reports a bare reference with no binding.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable: %s", e.Name)
}

func (e *UnknownVariableError) Is(target error) bool { return target == ErrUnknownVariable }

// StackUnderflowError reports a function popping more values than the
// stack holds.
type StackUnderflowError struct {
	Func      string
	Arity     int
	Available int
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow for %s: expected %d operands but only %d available",
		e.Func, e.Arity, e.Available)
}

func (e *StackUnderflowError) Is(target error) bool { return target == ErrStackUnderflow }

// MalformedTokenError reports a token the scanner cannot read.
type MalformedTokenError struct {
	Offset int
	Reason string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed token at offset %d: %s", e.Offset, e.Reason)
}

func (e *MalformedTokenError) Is(target error) bool { return target == ErrMalformedToken }

// ValueError reports a value of the wrong kind where text, an integer, a
// list or a type was required. All such mismatches are the same internal
// invariant violation and match ErrNonString.
type ValueError struct {
	Func string // function or step that received the value
	Want string
	Got  Value
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s %s", e.Func, e.Want, kindOf(e.Got), render(e.Got))
}

func (e *ValueError) Is(target error) bool { return target == ErrNonString }

// StackSizeError reports an expression that did not reduce to exactly one
// value.
type StackSizeError struct {
	Expr  string
	Depth int
}

func (e *StackSizeError) Error() string {
	return fmt.Sprintf("expression [%s] left %d values on the stack, want 1", e.Expr, e.Depth)
}

func (e *StackSizeError) Is(target error) bool { return target == ErrStackSize }

// FormatError reports a pattern that references a missing argument or has
// unbalanced braces.
type FormatError struct {
	Pattern string
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %q: %s", e.Pattern, e.Reason)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }
