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
	"fmt"
	"math"
	"slices"

	"github.com/ajroetker/mathgen/internal/types"
)

// Constant is a named double emitted in the header preamble.
type Constant struct {
	Name  string
	Value float64
}

// DefaultConstants are π, e and τ.
func DefaultConstants() []Constant {
	return []Constant{
		{Name: "π", Value: math.Pi},
		{Name: "euler", Value: math.E},
		{Name: "τ", Value: 2 * math.Pi},
	}
}

// DefaultIncludes are the headers the built-in catalogue depends on.
var DefaultIncludes = []string{"<stdbool.h>", "<stddef.h>", "<stdint.h>", "<string.h>", "<math.h>"}

// DefaultGuard is the include guard used when none is configured.
const DefaultGuard = "MATHGEN_MATH_H_"

// Config is the immutable description of one generation run. Build it with
// NewConfig; the zero value is not usable.
type Config struct {
	kinds      []*types.Kind
	vectorDims []int
	matrixDims []int
	rotors     bool
	constants  []Constant
	guard      string
	includes   []string
}

// Option configures NewConfig.
type Option func(*Config)

// WithKinds sets the base kinds, in generation order.
func WithKinds(kinds ...*types.Kind) Option {
	return func(c *Config) { c.kinds = kinds }
}

// WithVectorDims sets the vector sizes.
func WithVectorDims(dims ...int) Option {
	return func(c *Config) { c.vectorDims = dims }
}

// WithMatrixDims sets the row and column counts; every combination is
// generated.
func WithMatrixDims(dims ...int) Option {
	return func(c *Config) { c.matrixDims = dims }
}

// WithRotors enables or disables rotor types.
func WithRotors(enabled bool) Option {
	return func(c *Config) { c.rotors = enabled }
}

// WithConstants replaces the preamble constants.
func WithConstants(consts ...Constant) Option {
	return func(c *Config) { c.constants = consts }
}

// WithGuard sets the include guard macro.
func WithGuard(guard string) Option {
	return func(c *Config) { c.guard = guard }
}

// WithIncludes replaces the include list. Entries without <> or "" are
// treated as system headers.
func WithIncludes(includes ...string) Option {
	return func(c *Config) { c.includes = includes }
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) (Config, error) {
	c := Config{
		kinds:      types.DefaultKinds(),
		vectorDims: []int{2, 3, 4},
		matrixDims: []int{2, 3, 4},
		rotors:     true,
		constants:  DefaultConstants(),
		guard:      DefaultGuard,
		includes:   DefaultIncludes,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if len(c.kinds) == 0 {
		return Config{}, fmt.Errorf("no kinds configured")
	}
	seen := make(map[string]bool, len(c.kinds))
	for _, k := range c.kinds {
		if seen[k.Name] {
			return Config{}, fmt.Errorf("duplicate kind %s", k.Name)
		}
		seen[k.Name] = true
	}
	// Matrix rows are vectors, so both lists share the vector size limits.
	for _, d := range slices.Concat(c.vectorDims, c.matrixDims) {
		if d < 2 || d > 4 {
			return Config{}, fmt.Errorf("dimension %d out of range [2, 4]", d)
		}
	}
	if c.guard == "" {
		return Config{}, fmt.Errorf("empty include guard")
	}

	// Detach from caller slices.
	c.kinds = slices.Clone(c.kinds)
	c.vectorDims = slices.Clone(c.vectorDims)
	c.matrixDims = slices.Clone(c.matrixDims)
	c.constants = slices.Clone(c.constants)
	c.includes = slices.Clone(c.includes)
	return c, nil
}

// Kinds returns the configured base kinds.
func (c Config) Kinds() []*types.Kind { return slices.Clone(c.kinds) }

// VectorDims returns the configured vector sizes.
func (c Config) VectorDims() []int { return slices.Clone(c.vectorDims) }

// MatrixDims returns the configured matrix row and column counts.
func (c Config) MatrixDims() []int { return slices.Clone(c.matrixDims) }

// Rotors reports whether rotor types are generated.
func (c Config) Rotors() bool { return c.rotors }

// Constants returns the preamble constants.
func (c Config) Constants() []Constant { return slices.Clone(c.constants) }

// Guard returns the include guard macro.
func (c Config) Guard() string { return c.guard }

// Includes returns the include list.
func (c Config) Includes() []string { return slices.Clone(c.includes) }
