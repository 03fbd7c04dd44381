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
	"github.com/zkc-lang/zkc/pkg/diagnostics"
	"github.com/zkc-lang/zkc/pkg/hir"
	"github.com/zkc-lang/zkc/pkg/ids"
	"github.com/zkc-lang/zkc/pkg/types"
)

// checkInfix implements spec.md §4.1's Infix rule: check both operands,
// then dispatch to the comparator or general operand-type rule table
// depending on the operator.
func (c *Checker) checkInfix(id ids.ExprId, e hir.HirInfix) types.Type {
	lhsType := c.checkExpression(e.Lhs)
	rhsType := c.checkExpression(e.Rhs)

	var (
		result types.Type
		errMsg string
	)

	if e.Operator.IsComparator() {
		result, errMsg = c.comparatorOperandTypeRules(e.Operator, lhsType, rhsType)
	} else {
		result, errMsg = c.infixOperandTypeRules(e.Operator, lhsType, rhsType)
	}

	if errMsg != "" {
		c.error(diagnostics.New(c.Interner.ExprSpan(id), errMsg))
		return types.ErrorType{}
	}

	return result
}

// infixOperandTypeRules is infix_operand_type_rules: the core arithmetic
// and bitwise operator table. field_type_rules (the Integer/Integer and
// Integer/FieldElement(Constant) combinations) uses JoinVisibility;
// everything else falls into the "otherwise" bucket, which uses
// JoinFieldOrBoolVisibility. On success the returned error string is empty.
func (c *Checker) infixOperandTypeRules(op hir.BinaryOp, lhsRaw, rhsRaw types.Type) (types.Type, string) {
	lhs := c.deref(lhsRaw)
	rhs := c.deref(rhsRaw)

	if types.IsErrorOrUnspecified(lhs) || types.IsErrorOrUnspecified(rhs) {
		return types.ErrorType{}, ""
	}

	isBitwise := op == hir.BitAnd || op == hir.BitOr || op == hir.BitXor || op == hir.Shl || op == hir.Shr
	isDivMod := op == hir.Div || op == hir.Mod

	// Bool participates only in bitwise operators (treated as a width-1
	// unsigned integer) and is otherwise rejected outright.
	if _, ok := lhs.(types.BoolType); ok {
		if _, ok := rhs.(types.BoolType); ok && isBitwise {
			return types.BoolType{}, ""
		}

		return types.ErrorType{}, "type bool cannot be used in this operation"
	}

	if _, ok := rhs.(types.BoolType); ok {
		return types.ErrorType{}, "type bool cannot be used in this operation"
	}

	lInt, lIsInt := lhs.(types.IntegerType)
	rInt, rIsInt := rhs.(types.IntegerType)
	lField, lIsField := lhs.(types.FieldElementType)
	rField, rIsField := rhs.(types.FieldElementType)
	_, lIsPoly := lhs.(types.PolyIntType)
	_, rIsPoly := rhs.(types.PolyIntType)

	switch {
	case lIsPoly || rIsPoly:
		// An unbound integer literal's type is resolved here, at its first
		// use in an operator context: bind it to whatever the other operand
		// turns out to be, provided that side is itself integer-like.
		if !types.IsIntegerLike(lhs) || !types.IsIntegerLike(rhs) {
			return types.ErrorType{}, typeMismatchMsg(lhs, rhs)
		}

		if !c.Unifier.Unify(lhs, rhs) {
			return types.ErrorType{}, typeMismatchMsg(lhs, rhs)
		}

		result := lhs
		if lIsPoly {
			result = rhs
		}

		return c.deref(result), ""
	case lIsInt && rIsInt:
		if lInt.Signed != rInt.Signed || lInt.Width != rInt.Width {
			return types.ErrorType{}, typeMismatchMsg(lhs, rhs)
		}

		return types.IntegerType{Vis: types.JoinVisibility(lInt.Vis, rInt.Vis), Signed: lInt.Signed, Width: lInt.Width}, ""
	case lIsInt && rIsField:
		if rField.Vis != types.Constant {
			return types.ErrorType{}, typeMismatchMsg(lhs, rhs)
		}

		return types.IntegerType{Vis: types.JoinVisibility(lInt.Vis, rField.Vis), Signed: lInt.Signed, Width: lInt.Width}, ""
	case lIsField && rIsInt:
		if lField.Vis != types.Constant {
			return types.ErrorType{}, typeMismatchMsg(lhs, rhs)
		}

		return types.IntegerType{Vis: types.JoinVisibility(lField.Vis, rInt.Vis), Signed: rInt.Signed, Width: rInt.Width}, ""
	case lIsField && rIsField:
		if isBitwise || isDivMod {
			return types.ErrorType{}, "bitwise and division operators are not supported on field elements"
		}

		return types.FieldElementType{Vis: types.JoinFieldOrBoolVisibility(lField.Vis, rField.Vis)}, ""
	default:
		return types.ErrorType{}, typeMismatchMsg(lhs, rhs)
	}
}

// comparatorOperandTypeRules is comparator_operand_type_rules: it delegates
// entirely to infixOperandTypeRules' homogeneity check (any two operand
// types that could be added/compared structurally) and always yields Bool
// rather than the operand type itself.
func (c *Checker) comparatorOperandTypeRules(op hir.BinaryOp, lhsRaw, rhsRaw types.Type) (types.Type, string) {
	lhs := c.deref(lhsRaw)
	rhs := c.deref(rhsRaw)

	if types.IsErrorOrUnspecified(lhs) || types.IsErrorOrUnspecified(rhs) {
		return types.BoolType{}, ""
	}

	if _, ok := lhs.(types.BoolType); ok {
		if _, ok := rhs.(types.BoolType); ok {
			return types.BoolType{}, ""
		}

		return types.ErrorType{}, typeMismatchMsg(lhs, rhs)
	}

	if _, errMsg := c.infixOperandTypeRules(op, lhsRaw, rhsRaw); errMsg != "" {
		return types.ErrorType{}, errMsg
	}

	return types.BoolType{}, ""
}

// prefixOperandTypeRules is prefix_operand_type_rules: Negate requires a
// signed-capable numeric operand (Integer or FieldElement), Not requires
// Bool or Integer (treated bitwise).
func (c *Checker) prefixOperandTypeRules(op hir.UnaryOp, rhsRaw types.Type) (types.Type, string) {
	rhs := c.deref(rhsRaw)

	if types.IsErrorOrUnspecified(rhs) {
		return types.ErrorType{}, ""
	}

	switch op {
	case hir.Negate:
		switch rhs.(type) {
		case types.IntegerType, types.FieldElementType:
			return rhs, ""
		default:
			return types.ErrorType{}, "unary minus cannot be applied to type " + rhs.String()
		}
	case hir.Not:
		switch rhs.(type) {
		case types.BoolType, types.IntegerType:
			return rhs, ""
		default:
			return types.ErrorType{}, "unary ! cannot be applied to type " + rhs.String()
		}
	default:
		return types.ErrorType{}, "unknown prefix operator"
	}
}

func typeMismatchMsg(lhs, rhs types.Type) string {
	return "the operands of this operation have incompatible types " + lhs.String() + " and " + rhs.String()
}
