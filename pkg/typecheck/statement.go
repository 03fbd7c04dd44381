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

// checkStatement is type_check_statement, the statement-level counterpart
// to checkExpression. It returns the statement's own type, consulted by
// checkBlock to decide whether a non-final statement violates the
// block-must-end-in-its-value rule.
func (c *Checker) checkStatement(id ids.StmtId) types.Type {
	switch s := c.Interner.Statement(id).(type) {
	case hir.HirLet:
		exprType := c.checkExpression(s.Expression)

		if s.Type == nil {
			c.Interner.PushDefinitionType(s.Target, exprType)
			return types.UnitType{}
		}

		if !c.Unifier.MakeSubtypeOf(exprType, s.Type) {
			derefExpr := c.deref(exprType)
			if !types.IsErrorOrUnspecified(derefExpr) {
				c.error(diagnostics.TypeMismatchf(c.Interner.ExprSpan(s.Expression), s.Type.String(), derefExpr.String()))
			}
		}

		c.Interner.PushDefinitionType(s.Target, s.Type)

		return types.UnitType{}
	case hir.HirConstrain:
		exprType := c.checkExpression(s.Expression)
		if !c.Unifier.Unify(exprType, types.BoolType{}) {
			derefExpr := c.deref(exprType)
			if !types.IsErrorOrUnspecified(derefExpr) {
				c.error(diagnostics.TypeMismatchf(c.Interner.ExprSpan(s.Expression), "bool", derefExpr.String()))
			}
		}

		return types.UnitType{}
	case hir.HirExpressionStatement:
		return c.checkExpression(s.Expression)
	case hir.HirErrorStatement:
		return types.ErrorType{}
	default:
		panic(fmt.Sprintf("unhandled statement kind %T", s))
	}
}
