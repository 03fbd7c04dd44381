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
	"github.com/bits-and-blooms/bitset"

	"github.com/zkc-lang/zkc/pkg/diagnostics"
	"github.com/zkc-lang/zkc/pkg/hir"
	"github.com/zkc-lang/zkc/pkg/ids"
	"github.com/zkc-lang/zkc/pkg/types"
)

// checkCallArgs implements spec.md §4.1's Call rule: arity must match the
// callee's declared parameter count, then each argument must be a subtype
// of its corresponding parameter's declared type. A single arity mismatch
// is reported and the call's type is still the declared return type (so
// that a wrong-arity call doesn't cascade Type::Error through its caller).
func (c *Checker) checkCallArgs(fn ids.FuncId, args []types.Type, callSpan diagnostics.Span) types.Type {
	meta := c.Interner.FunctionMeta(fn)

	if len(args) != len(meta.Parameters) {
		c.error(diagnostics.ArityMismatchf(callSpan, len(meta.Parameters), len(args)))
	}

	// Even on a mismatch, zip the shorter prefix so arguments that do line
	// up with a parameter still get subtype-checked (and any still-unbound
	// PolymorphicInteger among them still gets resolved), instead of
	// short-circuiting the whole call per spec.md §7's no-short-circuit
	// diagnostic policy.
	n := len(args)
	if len(meta.Parameters) < n {
		n = len(meta.Parameters)
	}

	for i := 0; i < n; i++ {
		param := meta.Parameters[i]
		if !c.Unifier.MakeSubtypeOf(args[i], param.Type) {
			c.error(diagnostics.TypeMismatchf(callSpan, param.Type.String(), c.deref(args[i]).String()))
		}
	}

	return meta.ReturnType
}

// checkMethodCall implements spec.md §4.1's MethodCall rule: resolve the
// receiver's struct definition, look up the method, then desugar the call
// in place (via NodeInterner.ReplaceExpr) into an ordinary HirCall with the
// receiver prepended as the first argument, exactly mirroring how the
// source language turns `x.f(y)` into `Type::f(x, y)` once name resolution
// has picked a concrete method. After desugaring, the rest of the work is
// delegated to checkCallArgs.
func (c *Checker) checkMethodCall(id ids.ExprId, e hir.HirMethodCall) types.Type {
	objectType := c.checkExpression(e.Object)
	derefObject := c.deref(objectType)

	structType, ok := derefObject.(types.StructType)
	if !ok {
		if !types.IsErrorOrUnspecified(derefObject) {
			c.error(diagnostics.Newf(c.Interner.ExprSpan(id),
				"type %s has no method named %s", derefObject, e.MethodName))
		}

		return types.ErrorType{}
	}

	methodId, ok := structType.Def.Method(e.MethodName)
	if !ok {
		c.error(diagnostics.Newf(c.Interner.ExprSpan(id),
			"type %s has no method named %s", structType, e.MethodName))

		return types.ErrorType{}
	}

	args := c.checkExpressions(e.Args)

	allArgs := make([]ids.ExprId, 0, len(e.Args)+1)
	allArgs = append(allArgs, e.Object)
	allArgs = append(allArgs, e.Args...)

	c.Interner.ReplaceExpr(id, hir.HirCall{Func: methodId, Args: allArgs})

	allArgTypes := make([]types.Type, 0, len(args)+1)
	allArgTypes = append(allArgTypes, objectType)
	allArgTypes = append(allArgTypes, args...)

	return c.checkCallArgs(methodId, allArgTypes, c.Interner.ExprSpan(id))
}

// checkConstructor implements spec.md §4.1's Constructor rule: every
// supplied field must name a declared field of the target struct, every
// declared field must be supplied exactly once, and each supplied value
// must be a subtype of its field's declared type. Field presence is
// tracked with a bitset sized to the declaration's field count, the same
// index-addressed bit-tracking idiom the teacher's own trace-column
// presence checks use, rather than a map.
//
// The constructed type is unconditionally Struct(Private, def): spec.md §9
// flags this as a deliberately questionable simplification (a constructor
// of all-Constant fields arguably ought to produce a Constant struct), kept
// as-is per the open question's resolution in DESIGN.md.
func (c *Checker) checkConstructor(id ids.ExprId, e hir.HirConstructor) types.Type {
	seen := bitset.New(uint(len(e.StructDef.Fields)))

	for _, f := range e.Fields {
		valueType := c.checkExpression(f.Value)

		idx := e.StructDef.FieldIndex(f.Name)
		if idx < 0 {
			c.error(diagnostics.Newf(c.Interner.ExprSpan(f.Value),
				"%s has no field named %s", e.StructDef.Name, f.Name))

			continue
		}

		if seen.Test(uint(idx)) {
			c.error(diagnostics.Newf(c.Interner.ExprSpan(f.Value),
				"field %s was already supplied", f.Name))

			continue
		}

		seen.Set(uint(idx))

		declared := e.StructDef.Fields[idx].Type
		if !c.Unifier.MakeSubtypeOf(valueType, declared) {
			c.error(diagnostics.TypeMismatchf(c.Interner.ExprSpan(f.Value), declared.String(), c.deref(valueType).String()))
		}
	}

	if seen.Count() != uint(len(e.StructDef.Fields)) {
		for i, field := range e.StructDef.Fields {
			if !seen.Test(uint(i)) {
				c.error(diagnostics.Newf(c.Interner.ExprSpan(id), "missing field %s in constructor", field.Name))
			}
		}
	}

	return types.StructType{Vis: types.Private, Def: e.StructDef}
}
