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
	"fmt"

	"github.com/zkc-lang/zkc/pkg/diagnostics"
	"github.com/zkc-lang/zkc/pkg/ids"
	"github.com/zkc-lang/zkc/pkg/types"
)

// NodeInterner is the keyed repository of every expression, statement,
// function and definition in a crate, as handed to the type checker by
// upstream passes (lexing, parsing, name resolution). The checker both
// reads from it (expression/statement shapes, function signatures) and
// writes to it (expression/definition types, and in-place method-call
// desugaring via ReplaceExpr).
//
// All storage here is a plain Go map keyed by the opaque id types in
// pkg/ids; there is deliberately no pointer-chasing AST the way the
// teacher's own ast.Node tree works; this is the one place the checker's
// design departs from the teacher's, because spec.md's NodeInterner
// abstraction is addressed by id, not by node identity.
type NodeInterner struct {
	expressions map[ids.ExprId]HirExpression
	statements  map[ids.StmtId]HirStatement
	functions   map[ids.FuncId]FunctionMeta

	exprTypes map[ids.ExprId]types.Type
	defTypes  map[ids.DefId]types.Type

	exprSpans map[ids.ExprId]diagnostics.Span
	defSpans  map[ids.DefId]diagnostics.Span

	nextExprId ids.ExprId
	nextStmtId ids.StmtId
	nextFuncId ids.FuncId
	nextDefId  ids.DefId

	// Vars backs every PolymorphicInteger allocated while checking this
	// crate. It is exposed directly (rather than hidden behind only a
	// FreshTypeVariable method) so pkg/typecheck can construct a
	// types.Unifier over the same table.
	Vars *types.VarTable
}

// NewNodeInterner constructs an empty interner, ready to be populated by an
// upstream pass (or, in tests, directly via the Push*/Define* helpers
// below).
func NewNodeInterner() *NodeInterner {
	return &NodeInterner{
		expressions: make(map[ids.ExprId]HirExpression),
		statements:  make(map[ids.StmtId]HirStatement),
		functions:   make(map[ids.FuncId]FunctionMeta),
		exprTypes:   make(map[ids.ExprId]types.Type),
		defTypes:    make(map[ids.DefId]types.Type),
		exprSpans:   make(map[ids.ExprId]diagnostics.Span),
		defSpans:    make(map[ids.DefId]diagnostics.Span),
		Vars:        types.NewVarTable(),
	}
}

// --- population (upstream-pass-facing) -------------------------------------

// PushExpr interns a new expression node at a fresh ExprId, recording its
// source span, and returns that id.
func (n *NodeInterner) PushExpr(expr HirExpression, span diagnostics.Span) ids.ExprId {
	id := n.nextExprId
	n.nextExprId++
	n.expressions[id] = expr
	n.exprSpans[id] = span

	return id
}

// PushStmt interns a new statement node at a fresh StmtId and returns it.
func (n *NodeInterner) PushStmt(stmt HirStatement) ids.StmtId {
	id := n.nextStmtId
	n.nextStmtId++
	n.statements[id] = stmt

	return id
}

// PushDef allocates a fresh DefId for a new definition (let-binding,
// parameter, loop variable) with the given source span and returns it. Its
// type is filled in later via PushDefinitionType.
func (n *NodeInterner) PushDef(span diagnostics.Span) ids.DefId {
	id := n.nextDefId
	n.nextDefId++
	n.defSpans[id] = span

	return id
}

// DefineFunction interns a new function/method/intrinsic's metadata at a
// fresh FuncId and returns it.
func (n *NodeInterner) DefineFunction(meta FunctionMeta) ids.FuncId {
	id := n.nextFuncId
	n.nextFuncId++
	n.functions[id] = meta

	return id
}

// --- read side (type_check_* consumes these) -------------------------------

// Expression reads the pre-checked shape of an expression node. Panics if
// id was never interned: a genuinely out-of-bounds ExprId is a bug in an
// earlier pass, not a recoverable type error.
func (n *NodeInterner) Expression(id ids.ExprId) HirExpression {
	e, ok := n.expressions[id]
	if !ok {
		panic(fmt.Sprintf("%s: no such expression", id))
	}

	return e
}

// Statement reads the pre-checked shape of a statement node.
func (n *NodeInterner) Statement(id ids.StmtId) HirStatement {
	s, ok := n.statements[id]
	if !ok {
		panic(fmt.Sprintf("%s: no such statement", id))
	}

	return s
}

// FunctionMeta reads a function's parameter/return-type signature.
func (n *NodeInterner) FunctionMeta(id ids.FuncId) FunctionMeta {
	m, ok := n.functions[id]
	if !ok {
		panic(fmt.Sprintf("%s: no such function", id))
	}

	return m
}

// IdType reads a definition's recorded type. Panics if called before
// PushDefinitionType for that id; the checker only ever calls this after
// the defining statement has been processed, by construction of statement
// visitation order (spec.md §5).
func (n *NodeInterner) IdType(id ids.DefId) types.Type {
	t, ok := n.defTypes[id]
	if !ok {
		panic(fmt.Sprintf("%s: type requested before definition", id))
	}

	return t
}

// ExprSpan returns the source span an expression node was parsed from.
func (n *NodeInterner) ExprSpan(id ids.ExprId) diagnostics.Span {
	return n.exprSpans[id]
}

// IdSpan returns the source span a definition was declared at.
func (n *NodeInterner) IdSpan(id ids.DefId) diagnostics.Span {
	return n.defSpans[id]
}

// --- write side (type_check_* produces these) -------------------------------

// PushExprType records the result of type-checking expr as typ. Per
// spec.md's invariant, every ExprId reachable from a checked function ends
// up with exactly one entry here; calling this twice for the same id is a
// checker bug (each expression is only ever visited once).
func (n *NodeInterner) PushExprType(id ids.ExprId, typ types.Type) {
	if _, ok := n.exprTypes[id]; ok {
		panic(fmt.Sprintf("%s: type already recorded", id))
	}

	n.exprTypes[id] = typ
}

// ExprType looks up a previously recorded expression type. ok is false if
// the expression has not been type-checked (yet, or at all).
func (n *NodeInterner) ExprType(id ids.ExprId) (types.Type, bool) {
	t, ok := n.exprTypes[id]
	return t, ok
}

// PushDefinitionType records a definition's resolved type.
func (n *NodeInterner) PushDefinitionType(id ids.DefId, typ types.Type) {
	n.defTypes[id] = typ
}

// ReplaceExpr rewrites the expression stored at id in place. Used
// exclusively by method-call desugaring: once a HirMethodCall has been
// resolved to a concrete FuncId, it is replaced by the equivalent HirCall
// with the receiver prepended to its arguments, so that every later pass
// (and any other expression that already holds this ExprId) observes a
// plain function call. The node's span and any already-recorded type are
// left untouched.
func (n *NodeInterner) ReplaceExpr(id ids.ExprId, newExpr HirExpression) {
	if _, ok := n.expressions[id]; !ok {
		panic(fmt.Sprintf("%s: cannot replace unknown expression", id))
	}

	n.expressions[id] = newExpr
}

// FreshTypeVariable allocates a new PolymorphicInteger variable, the Go
// equivalent of spec.md's `next_type_variable_id()`: the table slot and the
// id are allocated together since nothing else in this module ever
// constructs a TypeVariableId independently of a VarTable slot.
func (n *NodeInterner) FreshTypeVariable() types.PolyIntType {
	return n.Vars.Fresh()
}
