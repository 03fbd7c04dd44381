// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package types_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zkc-lang/zkc/pkg/types"
)

func TestJoinVisibility(t *testing.T) {
	cases := []struct {
		a, b, want types.Visibility
	}{
		{types.Private, types.Private, types.Private},
		{types.Private, types.Public, types.Private},
		{types.Private, types.Constant, types.Private},
		{types.Public, types.Public, types.Public},
		{types.Public, types.Constant, types.Public},
		{types.Constant, types.Constant, types.Constant},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, types.JoinVisibility(c.a, c.b))
		assert.Equal(t, c.want, types.JoinVisibility(c.b, c.a), "join must be commutative")
	}
}

func TestJoinFieldOrBoolVisibilityDemotesPublicPublic(t *testing.T) {
	assert.Equal(t, types.Private, types.JoinFieldOrBoolVisibility(types.Public, types.Public))
	assert.Equal(t, types.Public, types.JoinVisibility(types.Public, types.Public),
		"JoinVisibility must NOT demote Public+Public; only the field/bool join does")
}

func TestUnifyConcreteEquality(t *testing.T) {
	u := types.NewUnifier(types.NewVarTable())

	assert.True(t, u.Unify(types.BoolType{}, types.BoolType{}))
	assert.True(t, u.Unify(
		types.IntegerType{Vis: types.Private, Signed: false, Width: 8},
		types.IntegerType{Vis: types.Private, Signed: false, Width: 8}))
	assert.False(t, u.Unify(
		types.IntegerType{Vis: types.Private, Signed: false, Width: 8},
		types.IntegerType{Vis: types.Private, Signed: true, Width: 8}))
}

func TestUnifyPolymorphicIntegerBindsOnce(t *testing.T) {
	vars := types.NewVarTable()
	u := types.NewUnifier(vars)
	p := vars.Fresh()

	assert.True(t, u.Unify(p, types.IntegerType{Vis: types.Private, Signed: false, Width: 32}))

	resolved, ok := vars.Resolve(p)
	assert.True(t, ok)
	assert.Equal(t, types.IntegerType{Vis: types.Private, Signed: false, Width: 32}, resolved)

	// Once bound, further unification is checked against the binding, not
	// silently re-bound.
	assert.False(t, u.Unify(p, types.BoolType{}))
}

func TestUnifyAgainstConstantSentinel(t *testing.T) {
	vars := types.NewVarTable()
	u := types.NewUnifier(vars)

	assert.True(t, u.Unify(types.FieldElementType{Vis: types.Constant}, types.ConstantSentinel{}))
	assert.False(t, u.Unify(types.FieldElementType{Vis: types.Private}, types.ConstantSentinel{}))

	p := vars.Fresh()
	assert.True(t, u.Unify(p, types.ConstantSentinel{}))

	resolved, ok := vars.Resolve(p)
	assert.True(t, ok)
	assert.Equal(t, types.FieldElementType{Vis: types.Constant}, resolved)
}

func TestMakeSubtypeOfConstantFlowsIntoAnyVisibility(t *testing.T) {
	u := types.NewUnifier(types.NewVarTable())

	assert.True(t, u.MakeSubtypeOf(
		types.FieldElementType{Vis: types.Constant},
		types.FieldElementType{Vis: types.Public}))
	assert.True(t, u.MakeSubtypeOf(
		types.IntegerType{Vis: types.Constant, Signed: false, Width: 8},
		types.IntegerType{Vis: types.Private, Signed: false, Width: 8}))
	assert.False(t, u.MakeSubtypeOf(
		types.IntegerType{Vis: types.Constant, Signed: false, Width: 8},
		types.IntegerType{Vis: types.Private, Signed: false, Width: 16}),
		"a constant's width must still match exactly")
}

func TestMakeSubtypeOfFixedArrayIntoVariableArray(t *testing.T) {
	u := types.NewUnifier(types.NewVarTable())

	fixed := types.ArrayType{Vis: types.Private, Size: types.FixedSize(4), Elem: types.BoolType{}}
	variable := types.ArrayType{Vis: types.Private, Size: types.VariableSize, Elem: types.BoolType{}}

	assert.True(t, u.MakeSubtypeOf(fixed, variable))
	assert.False(t, u.MakeSubtypeOf(variable, fixed), "a variable-size array is never a subtype of a fixed one")
}

func TestFitsWidth(t *testing.T) {
	assert.True(t, types.FitsWidth(big.NewInt(255), false, 8))
	assert.False(t, types.FitsWidth(big.NewInt(256), false, 8))
	assert.True(t, types.FitsWidth(big.NewInt(-128), true, 8))
	assert.False(t, types.FitsWidth(big.NewInt(-129), true, 8))
}
