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
package typecheck_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkc-lang/zkc/pkg/diagnostics"
	"github.com/zkc-lang/zkc/pkg/hir"
	"github.com/zkc-lang/zkc/pkg/ids"
	"github.com/zkc-lang/zkc/pkg/typecheck"
	"github.com/zkc-lang/zkc/pkg/types"
)

func dummySpan() diagnostics.Span { return diagnostics.NewSpan(0, 1) }

// checkSingleExprFunc builds a one-function crate whose body is the
// expression returned by build, and returns the accumulated diagnostics plus
// the body's resolved type.
func checkSingleExprFunc(t *testing.T, build func(n *hir.NodeInterner) ids.ExprId) ([]diagnostics.Diagnostic, types.Type) {
	t.Helper()

	n := hir.NewNodeInterner()
	body := build(n)
	fn := n.DefineFunction(hir.FunctionMeta{Body: body, HasBody: true, ReturnType: types.UnitType{}})

	diags := typecheck.CheckCrate(n, []ids.FuncId{fn})

	typ, ok := n.ExprType(body)
	require.True(t, ok)

	return diags, typ
}

func TestInfixAddPrivatePublicJoinsToPrivate(t *testing.T) {
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		lhsDef := n.PushDef(dummySpan())
		n.PushDefinitionType(lhsDef, types.IntegerType{Vis: types.Private, Signed: false, Width: 32})
		lhs := n.PushExpr(hir.HirIdent{Def: lhsDef}, dummySpan())

		rhsDef := n.PushDef(dummySpan())
		n.PushDefinitionType(rhsDef, types.IntegerType{Vis: types.Public, Signed: false, Width: 32})
		rhs := n.PushExpr(hir.HirIdent{Def: rhsDef}, dummySpan())

		return n.PushExpr(hir.HirInfix{Lhs: lhs, Operator: hir.Add, Rhs: rhs}, dummySpan())
	})

	assert.Empty(t, diags)
	assert.Equal(t, types.IntegerType{Vis: types.Private, Signed: false, Width: 32}, typ)
}

func TestInfixFieldPublicPublicDemotesToPrivate(t *testing.T) {
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		lhsDef := n.PushDef(dummySpan())
		n.PushDefinitionType(lhsDef, types.FieldElementType{Vis: types.Public})
		lhs := n.PushExpr(hir.HirIdent{Def: lhsDef}, dummySpan())

		rhsDef := n.PushDef(dummySpan())
		n.PushDefinitionType(rhsDef, types.FieldElementType{Vis: types.Public})
		rhs := n.PushExpr(hir.HirIdent{Def: rhsDef}, dummySpan())

		return n.PushExpr(hir.HirInfix{Lhs: lhs, Operator: hir.Add, Rhs: rhs}, dummySpan())
	})

	assert.Empty(t, diags)
	assert.Equal(t, types.FieldElementType{Vis: types.Private}, typ,
		"Public+Public must demote to Private for the field/bool infix bucket")
}

func TestInfixMismatchedWidthsReportsError(t *testing.T) {
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		lhsDef := n.PushDef(dummySpan())
		n.PushDefinitionType(lhsDef, types.IntegerType{Vis: types.Private, Signed: false, Width: 8})
		lhs := n.PushExpr(hir.HirIdent{Def: lhsDef}, dummySpan())

		rhsDef := n.PushDef(dummySpan())
		n.PushDefinitionType(rhsDef, types.IntegerType{Vis: types.Private, Signed: false, Width: 16})
		rhs := n.PushExpr(hir.HirIdent{Def: rhsDef}, dummySpan())

		return n.PushExpr(hir.HirInfix{Lhs: lhs, Operator: hir.Add, Rhs: rhs}, dummySpan())
	})

	require.Len(t, diags, 1)
	assert.Equal(t, types.ErrorType{}, typ)
}

func TestComparatorAlwaysYieldsBool(t *testing.T) {
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		lhsDef := n.PushDef(dummySpan())
		n.PushDefinitionType(lhsDef, types.IntegerType{Vis: types.Private, Signed: false, Width: 32})
		lhs := n.PushExpr(hir.HirIdent{Def: lhsDef}, dummySpan())

		rhsDef := n.PushDef(dummySpan())
		n.PushDefinitionType(rhsDef, types.IntegerType{Vis: types.Public, Signed: false, Width: 32})
		rhs := n.PushExpr(hir.HirIdent{Def: rhsDef}, dummySpan())

		return n.PushExpr(hir.HirInfix{Lhs: lhs, Operator: hir.Less, Rhs: rhs}, dummySpan())
	})

	assert.Empty(t, diags)
	assert.Equal(t, types.BoolType{}, typ)
}

func TestArrayLiteralHomogeneityReportsFirstMismatch(t *testing.T) {
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		a := n.PushExpr(hir.HirBoolLiteral{Value: true}, dummySpan())

		boolDef := n.PushDef(dummySpan())
		n.PushDefinitionType(boolDef, types.IntegerType{Vis: types.Private, Signed: false, Width: 8})
		b := n.PushExpr(hir.HirIdent{Def: boolDef}, dummySpan())

		return n.PushExpr(hir.HirArrayLiteral{Contents: []ids.ExprId{a, b}}, dummySpan())
	})

	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.NonHomogeneousArray, diags[0].Kind)
	assert.Equal(t, types.ArrayType{Vis: types.Private, Size: types.FixedSize(2), Elem: types.BoolType{}}, typ)
}

func TestIntegerLiteralGetsFreshPolymorphicType(t *testing.T) {
	_, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		return n.PushExpr(hir.HirIntegerLiteral{Value: big.NewInt(42)}, dummySpan())
	})

	_, isPoly := typ.(types.PolyIntType)
	assert.True(t, isPoly)
}

func TestCallArityMismatch(t *testing.T) {
	n := hir.NewNodeInterner()

	callee := n.DefineFunction(hir.FunctionMeta{
		Parameters: []hir.Param{{Name: n.PushDef(dummySpan()), Type: types.BoolType{}}},
		ReturnType: types.BoolType{},
	})

	call := n.PushExpr(hir.HirCall{Func: callee, Args: nil}, dummySpan())
	caller := n.DefineFunction(hir.FunctionMeta{Body: call, HasBody: true, ReturnType: types.UnitType{}})

	diags := typecheck.CheckCrate(n, []ids.FuncId{caller})

	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.ArityMismatch, diags[0].Kind)
}

func TestConstructorMissingFieldReportsError(t *testing.T) {
	def := &types.StructDefinition{
		Name: "Point",
		Fields: []types.StructField{
			{Name: "x", Type: types.FieldElementType{Vis: types.Private}},
			{Name: "y", Type: types.FieldElementType{Vis: types.Private}},
		},
	}

	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		xDef := n.PushDef(dummySpan())
		n.PushDefinitionType(xDef, types.FieldElementType{Vis: types.Private})
		xVal := n.PushExpr(hir.HirIdent{Def: xDef}, dummySpan())

		return n.PushExpr(hir.HirConstructor{
			StructDef: def,
			Fields:    []hir.HirConstructorField{{Name: "x", Value: xVal}},
		}, dummySpan())
	})

	require.Len(t, diags, 1)
	assert.Equal(t, types.StructType{Vis: types.Private, Def: def}, typ)
}

func TestIfBranchesMustUnify(t *testing.T) {
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		cond := n.PushExpr(hir.HirBoolLiteral{Value: true}, dummySpan())
		cons := n.PushExpr(hir.HirBoolLiteral{Value: true}, dummySpan())

		intDef := n.PushDef(dummySpan())
		n.PushDefinitionType(intDef, types.IntegerType{Vis: types.Private, Signed: false, Width: 8})
		alt := n.PushExpr(hir.HirIdent{Def: intDef}, dummySpan())

		return n.PushExpr(hir.HirIf{Condition: cond, Consequence: cons, Alternative: &alt}, dummySpan())
	})

	require.Len(t, diags, 1)
	assert.Equal(t, types.BoolType{}, typ)
}

func TestLetAnnotationResolvesIntegerLiteral(t *testing.T) {
	// let x: Field = 3; let y = x + 1;
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		three := n.PushExpr(hir.HirIntegerLiteral{Value: big.NewInt(3)}, dummySpan())
		xDef := n.PushDef(dummySpan())
		letX := n.PushStmt(hir.HirLet{Target: xDef, Expression: three, Type: types.FieldElementType{Vis: types.Private}})

		x := n.PushExpr(hir.HirIdent{Def: xDef}, dummySpan())
		one := n.PushExpr(hir.HirIntegerLiteral{Value: big.NewInt(1)}, dummySpan())
		sum := n.PushExpr(hir.HirInfix{Lhs: x, Operator: hir.Add, Rhs: one}, dummySpan())

		yDef := n.PushDef(dummySpan())
		letY := n.PushStmt(hir.HirLet{Target: yDef, Expression: sum})
		y := n.PushExpr(hir.HirIdent{Def: yDef}, dummySpan())
		yStmt := n.PushStmt(hir.HirExpressionStatement{Expression: y})

		return n.PushExpr(hir.HirBlock{Statements: []ids.StmtId{letX, letY, yStmt}}, dummySpan())
	})

	assert.Empty(t, diags)
	assert.Equal(t, types.FieldElementType{Vis: types.Private}, typ)
}

func TestLetAnnotationMismatchReportsError(t *testing.T) {
	diags, _ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		b := n.PushExpr(hir.HirBoolLiteral{Value: true}, dummySpan())
		def := n.PushDef(dummySpan())
		let := n.PushStmt(hir.HirLet{Target: def, Expression: b, Type: types.FieldElementType{Vis: types.Private}})

		return n.PushExpr(hir.HirBlock{Statements: []ids.StmtId{let}}, dummySpan())
	})

	require.Len(t, diags, 1)
}

func TestInfixUnboundLiteralBindsToOtherOperand(t *testing.T) {
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		lhsDef := n.PushDef(dummySpan())
		n.PushDefinitionType(lhsDef, types.IntegerType{Vis: types.Private, Signed: false, Width: 32})
		lhs := n.PushExpr(hir.HirIdent{Def: lhsDef}, dummySpan())

		rhs := n.PushExpr(hir.HirIntegerLiteral{Value: big.NewInt(1)}, dummySpan())

		return n.PushExpr(hir.HirInfix{Lhs: lhs, Operator: hir.Add, Rhs: rhs}, dummySpan())
	})

	assert.Empty(t, diags)
	assert.Equal(t, types.IntegerType{Vis: types.Private, Signed: false, Width: 32}, typ)
}

func TestInfixTwoUnboundLiteralsUnifyWithEachOther(t *testing.T) {
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		lhs := n.PushExpr(hir.HirIntegerLiteral{Value: big.NewInt(1)}, dummySpan())
		rhs := n.PushExpr(hir.HirIntegerLiteral{Value: big.NewInt(2)}, dummySpan())

		return n.PushExpr(hir.HirInfix{Lhs: lhs, Operator: hir.Add, Rhs: rhs}, dummySpan())
	})

	assert.Empty(t, diags)
	_, isPoly := typ.(types.PolyIntType)
	assert.True(t, isPoly, "neither operand constrains a width yet, so the result stays polymorphic")
}

func TestCallArityMismatchStillChecksMatchingPrefix(t *testing.T) {
	n := hir.NewNodeInterner()

	param := n.PushDef(dummySpan())
	callee := n.DefineFunction(hir.FunctionMeta{
		Parameters: []hir.Param{{Name: param, Type: types.BoolType{}}},
		ReturnType: types.BoolType{},
	})

	// One argument lines up with the sole parameter but has the wrong type,
	// and a second, unmatched argument is supplied: both the arity mismatch
	// and the mismatched-prefix-argument diagnostic must be reported.
	badArgDef := n.PushDef(dummySpan())
	n.PushDefinitionType(badArgDef, types.IntegerType{Vis: types.Private, Signed: false, Width: 8})
	badArg := n.PushExpr(hir.HirIdent{Def: badArgDef}, dummySpan())
	extra := n.PushExpr(hir.HirBoolLiteral{Value: true}, dummySpan())

	call := n.PushExpr(hir.HirCall{Func: callee, Args: []ids.ExprId{badArg, extra}}, dummySpan())
	caller := n.DefineFunction(hir.FunctionMeta{Body: call, HasBody: true, ReturnType: types.UnitType{}})

	diags := typecheck.CheckCrate(n, []ids.FuncId{caller})

	require.Len(t, diags, 2)
	assert.Equal(t, diagnostics.ArityMismatch, diags[0].Kind)
	assert.Equal(t, diagnostics.TypeMismatch, diags[1].Kind)
}

func TestBlockReturnsLastStatementType(t *testing.T) {
	diags, typ := checkSingleExprFunc(t, func(n *hir.NodeInterner) ids.ExprId {
		last := n.PushExpr(hir.HirBoolLiteral{Value: true}, dummySpan())
		stmt := n.PushStmt(hir.HirExpressionStatement{Expression: last})

		return n.PushExpr(hir.HirBlock{Statements: []ids.StmtId{stmt}}, dummySpan())
	})

	assert.Empty(t, diags)
	assert.Equal(t, types.BoolType{}, typ)
}
