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

	"github.com/ajroetker/mathgen/internal/macro"
	"github.com/ajroetker/mathgen/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func targetNames(targets []Target) []string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name()
	}
	return names
}

func TestTargetsOrder(t *testing.T) {
	cfg, err := NewConfig(
		WithKinds(types.F32(), types.FX32()),
		WithVectorDims(2, 3),
		WithMatrixDims(2, 3),
	)
	require.NoError(t, err)

	want := []string{
		"f32", "Vec2f", "Vec3f", "Mat2x2f", "Mat2x3f", "Mat3x2f", "Mat3x3f", "Rotor3f",
		"fx32", "Vec2x", "Vec3x", "Mat2x2x", "Mat2x3x", "Mat3x2x", "Mat3x3x", "Rotor3x",
		"f32<-fx32", "Vec2f<-Vec2x", "Vec3f<-Vec3x",
		"fx32<-f32", "Vec2x<-Vec2f", "Vec3x<-Vec3f",
	}
	if diff := cmp.Diff(want, targetNames(Targets(cfg))); diff != "" {
		t.Errorf("Targets() mismatch (-want +got):\n%s", diff)
	}
}

func TestTargetsWithoutRotors(t *testing.T) {
	cfg, err := NewConfig(WithKinds(types.F64()), WithVectorDims(4), WithMatrixDims(), WithRotors(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"f64", "Vec4d"}, targetNames(Targets(cfg)))
}

func TestTargetTags(t *testing.T) {
	f32, f64 := types.F32(), types.F64()

	tests := []struct {
		name   string
		target Target
		want   []string
	}{
		{"Scalar", Target{A: types.NewScalar(f32)}, []string{"s", "sf"}},
		{"Vector", Target{A: types.NewVector(f32, 3)}, []string{"v", "v3", "v3f", "vf"}},
		{"Matrix", Target{A: types.NewMatrix(f64, 4, 4)}, []string{"m", "m4x4", "m4x4d", "md"}},
		{"Rotor", Target{A: types.NewRotor(f32)}, []string{"r", "rf"}},
		{"ScalarPair", Target{A: types.NewScalar(f32), B: types.NewScalar(f64)}, []string{"cast", "casts", "castfd"}},
		{"VectorPair", Target{A: types.NewVector(f64, 2), B: types.NewVector(f32, 2)}, []string{"cast", "castv", "castv2", "castdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.Tags())
		})
	}
}

func TestTargetContext(t *testing.T) {
	f32, fx := types.F32(), types.FX32()

	t.Run("Vector", func(t *testing.T) {
		vec := types.NewVector(f32, 3)
		want := macro.Context{
			"T":   macro.TypeValue{Type: vec},
			"B":   macro.TypeValue{Type: vec.Elem},
			"I":   macro.Str("f"),
			"eps": macro.Str("0.0000001f"),
		}
		assert.Equal(t, want, Target{A: vec}.Context())
	})

	t.Run("Matrix", func(t *testing.T) {
		ctx := Target{A: types.NewMatrix(fx, 2, 3)}.Context()
		v, ok := ctx["V"].(macro.TypeValue)
		require.True(t, ok, "matrix context has no row vector")
		assert.Equal(t, "Vec3x", v.Type.Name())
	})

	t.Run("Pair", func(t *testing.T) {
		a, b := types.NewScalar(fx), types.NewScalar(f32)
		want := macro.Context{
			"Ta":   macro.TypeValue{Type: a},
			"Ba":   macro.TypeValue{Type: a},
			"Ia":   macro.Str("x"),
			"epsa": macro.Str("((fx32)1)"),
			"Tb":   macro.TypeValue{Type: b},
			"Bb":   macro.TypeValue{Type: b},
			"Ib":   macro.Str("f"),
			"epsb": macro.Str("0.0000001f"),
		}
		assert.Equal(t, want, Target{A: a, B: b}.Context())
	})

	t.Run("Fresh", func(t *testing.T) {
		target := Target{A: types.NewScalar(f32)}
		ctx := target.Context()
		ctx["T"] = macro.Str("changed")
		assert.Equal(t, macro.TypeValue{Type: target.A}, target.Context()["T"])
	})
}

func TestTargetFields(t *testing.T) {
	f32, f64 := types.F32(), types.F64()
	assert.Equal(t,
		map[string]string{"name": "Mat2x2d", "base": "f64"},
		Target{A: types.NewMatrix(f64, 2, 2)}.Fields())
	assert.Equal(t,
		map[string]string{"namea": "Vec2f", "basea": "f32", "nameb": "Vec2d", "baseb": "f64"},
		Target{A: types.NewVector(f32, 2), B: types.NewVector(f64, 2)}.Fields())
}
