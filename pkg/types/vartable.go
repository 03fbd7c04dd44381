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
package types

import "github.com/zkc-lang/zkc/pkg/ids"

// binding is the payload held for one PolymorphicInteger variable: either
// still Unbound, or Bound to a concrete Type.
type binding struct {
	bound bool
	typ   Type
}

// VarTable is the unifier-owned table backing every PolymorphicInteger in a
// single type-checking run, analogous in spirit to the teacher's
// util.FrIndexPool (an index-addressed table of otherwise-heavy values) but
// storing unification state rather than field elements. A TypeVariableId is
// simply an index into words; Fresh appends a fresh Unbound slot and
// returns its index, mirroring pool.LocalIndex.Put.
type VarTable struct {
	words []binding
}

// NewVarTable constructs an empty table.
func NewVarTable() *VarTable {
	return &VarTable{}
}

// Fresh allocates a new, Unbound PolymorphicInteger variable and returns a
// Type referencing it. This is what NodeInterner.FreshTypeVariable backs
// onto for integer-literal expressions.
func (t *VarTable) Fresh() PolyIntType {
	id := ids.TypeVariableId(len(t.words))
	t.words = append(t.words, binding{bound: false})

	return PolyIntType{Var: id}
}

// Lookup returns the current binding of a variable: ok is false if it is
// still Unbound.
func (t *VarTable) Lookup(v ids.TypeVariableId) (Type, bool) {
	b := t.words[v]
	return b.typ, b.bound
}

// Bind records v as permanently bound to typ. If v is already bound to
// another PolymorphicInteger, the unbound variable at the end of that chain
// is the one bound, so a cell, once bound, is never rebound (invariant 2 of
// the spec's data model). It panics if v's chain ends in a concrete type:
// callers are expected to have already checked Resolve.
func (t *VarTable) Bind(v ids.TypeVariableId, typ Type) {
	for t.words[v].bound {
		next, ok := t.words[v].typ.(PolyIntType)
		if !ok {
			panic("type variable already bound")
		}

		v = next.Var
	}
	// A bound variable must never alias its own cell transitively: binding
	// v to a chain whose unbound tail is v itself leaves v unbound.
	if p, ok := typ.(PolyIntType); ok {
		if resolved, isBound := t.Resolve(p); isBound {
			typ = resolved
		} else {
			for t.words[p.Var].bound {
				p = t.words[p.Var].typ.(PolyIntType)
			}

			if p.Var == v {
				return
			}

			typ = p
		}
	}

	t.words[v] = binding{bound: true, typ: typ}
}

// Resolve follows a possibly-bound PolymorphicInteger to its underlying
// type, recursing through chains of bound-to-another-PolyInt links (which
// per invariant cannot themselves be unbound aliases of the same cell, but
// can legitimately be bound to a further PolyInt that is itself resolved).
// ok is false if the variable (or the chain's tail) is unbound.
func (t *VarTable) Resolve(p PolyIntType) (Type, bool) {
	cur := p

	for {
		typ, bound := t.Lookup(cur.Var)
		if !bound {
			return nil, false
		}

		next, ok := typ.(PolyIntType)
		if !ok {
			return typ, true
		}

		cur = next
	}
}

// Deref fully resolves typ if it is a bound PolymorphicInteger, returning it
// unchanged otherwise (including when its chain ends unbound). This is the
// helper every rule in
// pkg/typecheck calls before switching on a Type's dynamic kind, so that
// bound polymorphic integers are transparent to every rule.
func Deref(t *VarTable, typ Type) Type {
	p, ok := typ.(PolyIntType)
	if !ok {
		return typ
	}

	resolved, bound := t.Resolve(p)
	if !bound {
		return typ
	}

	return resolved
}
