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

// Package typecheck implements the type-check dispatcher: the mutually
// recursive type_check_expression/type_check_statement procedures and the
// operator/call/cast rule tables they consult. It is the sole writer of
// hir.NodeInterner's expression and definition type maps.
package typecheck

import (
	"github.com/zkc-lang/zkc/pkg/diagnostics"
	"github.com/zkc-lang/zkc/pkg/hir"
	"github.com/zkc-lang/zkc/pkg/ids"
	"github.com/zkc-lang/zkc/pkg/types"
)

// Checker holds the per-run state of a single type-checking pass: the
// interner being read from and written to, the Unifier over its shared
// PolymorphicInteger table, and the accumulated diagnostics. Diagnostics
// are append-only and owned by the caller once CheckCrate returns; nothing
// here ever short-circuits on error (spec.md §7's propagation policy).
type Checker struct {
	Interner *hir.NodeInterner
	Unifier  *types.Unifier
	Errors   []diagnostics.Diagnostic
}

// NewChecker constructs a Checker over interner, sharing its VarTable with
// a fresh Unifier.
func NewChecker(interner *hir.NodeInterner) *Checker {
	return &Checker{
		Interner: interner,
		Unifier:  types.NewUnifier(interner.Vars),
	}
}

// CheckCrate type-checks every function named in funcIds against interner
// and returns the accumulated diagnostics. This is the external entry point
// described in spec.md §6: "a function that checks every function in a
// crate's NodeInterner and returns the accumulated diagnostics".
func CheckCrate(interner *hir.NodeInterner, funcIds []ids.FuncId) []diagnostics.Diagnostic {
	c := NewChecker(interner)

	for _, id := range funcIds {
		c.CheckFunction(id)
	}

	return c.Errors
}

// CheckFunction type-checks a single function's body, if it has one
// (intrinsics and the dummy sentinel do not). Returns the resolved body
// type for convenience in tests; production callers only care about
// Checker.Errors and the interner's side effects.
func (c *Checker) CheckFunction(id ids.FuncId) types.Type {
	meta := c.Interner.FunctionMeta(id)
	if !meta.HasBody {
		return meta.ReturnType
	}

	diagnostics.Log.Debugf("type checking function %s", id)

	return c.checkExpression(meta.Body)
}

func (c *Checker) error(d diagnostics.Diagnostic) {
	c.Errors = append(c.Errors, d)
}

// checkExpressions checks a list of expressions left-to-right, matching
// the source-order visitation spec.md §5 requires (diagnostics and
// visibility-join asymmetries are observable through this ordering).
func (c *Checker) checkExpressions(exprs []ids.ExprId) []types.Type {
	out := make([]types.Type, len(exprs))
	for i, e := range exprs {
		out[i] = c.checkExpression(e)
	}

	return out
}

// deref is shorthand for resolving a possibly-bound PolymorphicInteger
// against this checker's shared VarTable.
func (c *Checker) deref(t types.Type) types.Type {
	return types.Deref(c.Unifier.Vars, t)
}
