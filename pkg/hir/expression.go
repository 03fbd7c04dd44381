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
package hir

import (
	"math/big"

	"github.com/zkc-lang/zkc/pkg/ids"
	"github.com/zkc-lang/zkc/pkg/types"
)

// HirExpression is the pre-type-check shape of one expression node, as
// produced by parsing/name-resolution. It carries no type information of
// its own; the checker computes and records a Type for each ExprId
// separately in the NodeInterner.
type HirExpression interface {
	isHirExpression()
}

// HirIdent references a resolved definition by id.
type HirIdent struct{ Def ids.DefId }

// HirArrayLiteral is `[a, b, c, ...]`.
type HirArrayLiteral struct{ Contents []ids.ExprId }

// HirBoolLiteral is `true`/`false`.
type HirBoolLiteral struct{ Value bool }

// HirIntegerLiteral is an integer literal whose type is not yet resolved;
// the checker assigns it a fresh PolymorphicInteger.
type HirIntegerLiteral struct{ Value *big.Int }

// HirStrLiteral is a string literal. Per spec.md §4.1 and §9's open
// question, string literals are not supported by this language; a
// HirStrLiteral reaching type_check_expression is an internal error, not a
// recoverable diagnostic.
type HirStrLiteral struct{ Value string }

// HirInfix is `lhs op rhs`.
type HirInfix struct {
	Lhs      ids.ExprId
	Operator BinaryOp
	Rhs      ids.ExprId
}

// HirIndex is `collection[index]`.
type HirIndex struct {
	Collection ids.ExprId
	Index      ids.ExprId
}

// HirCall is an ordinary function call.
type HirCall struct {
	Func ids.FuncId
	Args []ids.ExprId
}

// HirMethodCall is `receiver.method(args...)`, desugared in place into a
// HirCall by the checker once the method is resolved (see
// pkg/typecheck.(*Checker).checkMethodCall).
type HirMethodCall struct {
	Object     ids.ExprId
	MethodName string
	Args       []ids.ExprId
}

// HirCast is `lhs as T`.
type HirCast struct {
	Lhs  ids.ExprId
	Type types.Type
}

// HirFor is `for ident in start..end { block }`.
type HirFor struct {
	Identifier ids.DefId
	StartRange ids.ExprId
	EndRange   ids.ExprId
	Block      ids.ExprId
}

// HirBlock is `{ stmt; stmt; ...; stmt }`.
type HirBlock struct{ Statements []ids.StmtId }

// HirPrefix is `op rhs`.
type HirPrefix struct {
	Operator UnaryOp
	Rhs      ids.ExprId
}

// HirIf is `if cond { consequence } else { alternative }`; Alternative is
// nil when there is no else branch.
type HirIf struct {
	Condition   ids.ExprId
	Consequence ids.ExprId
	Alternative *ids.ExprId
}

// HirConstructorField is one `name: value` pair supplied at a struct
// construction site, in the order the caller wrote them (not yet
// re-sorted to match the declaration).
type HirConstructorField struct {
	Name  string
	Value ids.ExprId
}

// HirConstructor is `StructName { field: value, ... }`.
type HirConstructor struct {
	StructDef *types.StructDefinition
	Fields    []HirConstructorField
}

// HirMemberAccess is `lhs.rhsFieldName`, covering both struct field access
// and tuple positional access (where RhsFieldName holds the base-10 index
// as text, e.g. "0", "1").
type HirMemberAccess struct {
	Lhs          ids.ExprId
	RhsFieldName string
}

// HirTuple is `(a, b, c)`.
type HirTuple struct{ Fields []ids.ExprId }

// HirErrorExpression marks a node that earlier compiler phases already
// know is broken (e.g. a parse error); type_check_expression returns
// Type::Error for it immediately without emitting a further diagnostic.
type HirErrorExpression struct{}

func (HirIdent) isHirExpression()           {}
func (HirArrayLiteral) isHirExpression()    {}
func (HirBoolLiteral) isHirExpression()     {}
func (HirIntegerLiteral) isHirExpression()  {}
func (HirStrLiteral) isHirExpression()      {}
func (HirInfix) isHirExpression()           {}
func (HirIndex) isHirExpression()           {}
func (HirCall) isHirExpression()            {}
func (HirMethodCall) isHirExpression()      {}
func (HirCast) isHirExpression()            {}
func (HirFor) isHirExpression()             {}
func (HirBlock) isHirExpression()           {}
func (HirPrefix) isHirExpression()          {}
func (HirIf) isHirExpression()              {}
func (HirConstructor) isHirExpression()     {}
func (HirMemberAccess) isHirExpression()    {}
func (HirTuple) isHirExpression()           {}
func (HirErrorExpression) isHirExpression() {}
