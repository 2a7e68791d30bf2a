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
	"testing"

	"github.com/ajroetker/mathgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	names := make([]string, 0, 3)
	for _, k := range cfg.Kinds() {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{"f32", "f64", "fx32"}, names)
	assert.Equal(t, []int{2, 3, 4}, cfg.VectorDims())
	assert.Equal(t, []int{2, 3, 4}, cfg.MatrixDims())
	assert.True(t, cfg.Rotors())
	assert.Equal(t, DefaultGuard, cfg.Guard())
	assert.Equal(t, DefaultIncludes, cfg.Includes())
	assert.Len(t, cfg.Constants(), 3)
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"NoKinds", []Option{WithKinds()}},
		{"DuplicateKind", []Option{WithKinds(types.F32(), types.F32())}},
		{"VectorTooSmall", []Option{WithVectorDims(1, 2)}},
		{"MatrixTooLarge", []Option{WithMatrixDims(5)}},
		{"EmptyGuard", []Option{WithGuard("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts...)
			assert.Error(t, err)
		})
	}
}

func TestConfigIsImmutable(t *testing.T) {
	dims := []int{3}
	cfg, err := NewConfig(WithVectorDims(dims...))
	require.NoError(t, err)

	dims[0] = 4
	assert.Equal(t, []int{3}, cfg.VectorDims())

	got := cfg.VectorDims()
	got[0] = 2
	assert.Equal(t, []int{3}, cfg.VectorDims())
}
