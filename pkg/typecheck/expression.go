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
package typecheck

import (
	"fmt"

	"github.com/zkc-lang/zkc/pkg/diagnostics"
	"github.com/zkc-lang/zkc/pkg/hir"
	"github.com/zkc-lang/zkc/pkg/ids"
	"github.com/zkc-lang/zkc/pkg/types"
)

// checkExpression is type_check_expression: the single entry point of the
// dispatcher. It reads id's shape from the interner, computes its type via
// the per-variant rules below, records (id -> type) in the interner, and
// returns the type. It never short-circuits the traversal: on any failure
// it records Type::Error for id and keeps walking so a single pass surfaces
// as many diagnostics as possible.
func (c *Checker) checkExpression(id ids.ExprId) types.Type {
	expr := c.Interner.Expression(id)
	typ := c.dispatchExpression(id, expr)
	c.Interner.PushExprType(id, typ)

	return typ
}

func (c *Checker) dispatchExpression(id ids.ExprId, expr hir.HirExpression) types.Type {
	switch e := expr.(type) {
	case hir.HirIdent:
		return c.Interner.IdType(e.Def)
	case hir.HirArrayLiteral:
		return c.checkArrayLiteral(e)
	case hir.HirBoolLiteral:
		return types.BoolType{}
	case hir.HirIntegerLiteral:
		return c.Interner.FreshTypeVariable()
	case hir.HirStrLiteral:
		// Not supported by the source language; preserved as a clearly
		// flagged internal error rather than silently downgraded to
		// Type::Error, per spec.md §9's open question.
		panic("string literals are not supported by the type checker")
	case hir.HirInfix:
		return c.checkInfix(id, e)
	case hir.HirIndex:
		return c.checkIndex(id, e)
	case hir.HirCall:
		args := c.checkExpressions(e.Args)
		if e.Func.IsDummy() {
			// Name resolution already failed to pin down a callee; don't
			// cascade a further diagnostic on top of that one.
			return types.ErrorType{}
		}

		return c.checkCallArgs(e.Func, args, c.Interner.ExprSpan(id))
	case hir.HirMethodCall:
		return c.checkMethodCall(id, e)
	case hir.HirCast:
		return c.checkCast(e)
	case hir.HirFor:
		return c.checkFor(e)
	case hir.HirBlock:
		return c.checkBlock(e)
	case hir.HirPrefix:
		return c.checkPrefix(id, e)
	case hir.HirIf:
		return c.checkIf(id, e)
	case hir.HirConstructor:
		return c.checkConstructor(id, e)
	case hir.HirMemberAccess:
		return c.checkMemberAccess(id, e)
	case hir.HirTuple:
		elems := c.checkExpressions(e.Fields)
		return types.TupleType{Elems: elems}
	case hir.HirErrorExpression:
		return types.ErrorType{}
	default:
		panic(fmt.Sprintf("unhandled expression kind %T", expr))
	}
}

// checkArrayLiteral implements spec.md §4.1's Literal/Array rule: check
// every element, take the first's type as T, build Array(Private,
// Fixed(len), T), then require every remaining element to unify with T,
// reporting the first mismatch found (1-based positions in the
// diagnostic).
func (c *Checker) checkArrayLiteral(e hir.HirArrayLiteral) types.Type {
	if len(e.Contents) == 0 {
		// An empty array literal has no element to anchor T on; this is a
		// degenerate case the source language's parser is expected to
		// reject, but the checker still needs a total function here.
		return types.ArrayType{Vis: types.Private, Size: types.FixedSize(0), Elem: types.UnitType{}}
	}

	firstId := e.Contents[0]
	firstType := c.checkExpression(firstId)
	arr := types.ArrayType{Vis: types.Private, Size: types.FixedSize(uint(len(e.Contents))), Elem: firstType}

	for i := 1; i < len(e.Contents); i++ {
		elemId := e.Contents[i]
		elemType := c.checkExpression(elemId)

		if !c.Unifier.Unify(elemType, firstType) {
			c.error(diagnostics.NonHomogeneousArrayf(
				c.Interner.ExprSpan(firstId), firstType.String(), 1,
				c.Interner.ExprSpan(elemId), elemType.String(), i+1,
			))
		}
	}

	return arr
}

// checkIndex implements spec.md §4.1's Index rule.
func (c *Checker) checkIndex(_ ids.ExprId, e hir.HirIndex) types.Type {
	collType := c.checkExpression(e.Collection)
	idxType := c.checkExpression(e.Index)

	if !c.Unifier.Unify(idxType, types.ConstantSentinel{}) {
		idxSpan := c.Interner.ExprSpan(e.Index)
		derefIdx := c.deref(idxType)

		if fe, ok := derefIdx.(types.FieldElementType); ok && fe.Vis != types.Constant {
			c.error(diagnostics.New(idxSpan,
				"array index must be a compile-time constant, but found a non-constant field element"))
		} else if !types.IsErrorOrUnspecified(derefIdx) {
			c.error(diagnostics.Newf(idxSpan, "array index must be a compile-time constant, found type %s", derefIdx))
		}
	}

	derefColl := c.deref(collType)

	arr, ok := derefColl.(types.ArrayType)
	if !ok {
		if !types.IsErrorOrUnspecified(derefColl) {
			c.error(diagnostics.TypeMismatchf(c.Interner.ExprSpan(e.Collection), "Array", derefColl.String()))
		}

		return types.ErrorType{}
	}

	return arr.Elem
}

// checkFor implements spec.md §4.1's For rule.
func (c *Checker) checkFor(e hir.HirFor) types.Type {
	startType := c.checkExpression(e.StartRange)
	c.requireConstant(e.StartRange, startType, "for loop")

	endType := c.checkExpression(e.EndRange)
	c.requireConstant(e.EndRange, endType, "for loop")

	if !c.Unifier.Unify(startType, endType) {
		c.error(diagnostics.Newf(c.Interner.ExprSpan(e.EndRange),
			"range bounds have different types: %s and %s", startType, endType))
	}

	c.Interner.PushDefinitionType(e.Identifier, startType)

	bodyType := c.checkExpression(e.Block)

	return types.ArrayType{Vis: types.Private, Size: types.VariableSize, Elem: bodyType}
}

// requireConstant unifies t against the Constant sentinel, emitting a
// TypeCannotBeUsed diagnostic (rather than the generic Unstructured message
// used elsewhere) when it fails, since "value is not known at compile time"
// is exactly the TypeCannotBeUsed story.
func (c *Checker) requireConstant(exprId ids.ExprId, t types.Type, place string) bool {
	if c.Unifier.Unify(t, types.ConstantSentinel{}) {
		return true
	}

	derefT := c.deref(t)
	if types.IsErrorOrUnspecified(derefT) {
		return false
	}

	c.error(diagnostics.TypeCannotBeUsedf(c.Interner.ExprSpan(exprId), derefT.String(), place))

	return false
}

// checkBlock implements spec.md §4.1's Block rule.
func (c *Checker) checkBlock(e hir.HirBlock) types.Type {
	if len(e.Statements) == 0 {
		return types.UnitType{}
	}

	var last types.Type = types.UnitType{}

	for i, stmtId := range e.Statements {
		t := c.checkStatement(stmtId)

		if i < len(e.Statements)-1 {
			if !c.Unifier.Unify(t, types.UnitType{}) {
				c.error(diagnostics.Newf(c.statementSpan(stmtId),
					"expected type (), found type %s (only the last statement in a block may produce a value)", t))
			}
		}

		last = t
	}

	return last
}

// checkPrefix implements spec.md §4.1's Prefix rule.
func (c *Checker) checkPrefix(_ ids.ExprId, e hir.HirPrefix) types.Type {
	rhsType := c.checkExpression(e.Rhs)

	result, errMsg := c.prefixOperandTypeRules(e.Operator, rhsType)
	if errMsg != "" {
		c.error(diagnostics.New(c.Interner.ExprSpan(e.Rhs), errMsg))
		return types.ErrorType{}
	}

	return result
}

// checkIf implements spec.md §4.1's If rule.
func (c *Checker) checkIf(_ ids.ExprId, e hir.HirIf) types.Type {
	condType := c.checkExpression(e.Condition)
	if !c.Unifier.Unify(condType, types.BoolType{}) {
		derefCond := c.deref(condType)
		if !types.IsErrorOrUnspecified(derefCond) {
			c.error(diagnostics.TypeMismatchf(c.Interner.ExprSpan(e.Condition), "bool", derefCond.String()))
		}
	}

	consequenceType := c.checkExpression(e.Consequence)

	if e.Alternative == nil {
		return types.UnitType{}
	}

	alternativeType := c.checkExpression(*e.Alternative)

	if !c.Unifier.Unify(consequenceType, alternativeType) {
		d := diagnostics.Newf(c.Interner.ExprSpan(e.Consequence),
			"if and else branches have different types: %s and %s", consequenceType, alternativeType)

		if _, ok := c.deref(consequenceType).(types.UnitType); ok {
			d = d.WithContext("consider adding a semicolon after the last expression of the if branch")
		} else if _, ok := c.deref(alternativeType).(types.UnitType); ok {
			d = d.WithContext("consider adding a semicolon after the last expression of the else branch")
		}

		c.error(d)
	}

	return consequenceType
}

// checkMemberAccess implements spec.md §4.1's MemberAccess rule.
func (c *Checker) checkMemberAccess(id ids.ExprId, e hir.HirMemberAccess) types.Type {
	lhsType := c.checkExpression(e.Lhs)
	derefLhs := c.deref(lhsType)

	switch t := derefLhs.(type) {
	case types.StructType:
		idx := t.Def.FieldIndex(e.RhsFieldName)
		if idx < 0 {
			c.error(diagnostics.Newf(c.Interner.ExprSpan(id),
				"type %s has no member named %s", t, e.RhsFieldName))

			return types.ErrorType{}
		}

		return t.Def.Fields[idx].Type
	case types.TupleType:
		idx, ok := parseTupleIndex(e.RhsFieldName)
		if !ok || idx < 0 || idx >= len(t.Elems) {
			c.error(diagnostics.Newf(c.Interner.ExprSpan(id),
				"type %s has no member named %s", t, e.RhsFieldName))

			return types.ErrorType{}
		}

		return t.Elems[idx]
	default:
		if !types.IsErrorOrUnspecified(derefLhs) {
			c.error(diagnostics.Newf(c.Interner.ExprSpan(id),
				"type %s has no member named %s", derefLhs, e.RhsFieldName))
		}

		return types.ErrorType{}
	}
}

func parseTupleIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	n := 0

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}

		n = n*10 + int(r-'0')
	}

	return n, true
}

// statementSpan best-efforts a span for a statement, used only for the
// block-non-final-statement diagnostic. Statements are not independently
// spanned in the interner (only expressions and definitions are); we use
// the span of the statement's own expression, which is always present.
func (c *Checker) statementSpan(stmtId ids.StmtId) diagnostics.Span {
	switch s := c.Interner.Statement(stmtId).(type) {
	case hir.HirLet:
		return c.Interner.ExprSpan(s.Expression)
	case hir.HirConstrain:
		return c.Interner.ExprSpan(s.Expression)
	case hir.HirExpressionStatement:
		return c.Interner.ExprSpan(s.Expression)
	default:
		return diagnostics.NewSpan(0, 0)
	}
}
