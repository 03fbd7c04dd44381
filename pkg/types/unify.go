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

// Unifier imposes equality (Unify) and directed subtype (MakeSubtypeOf)
// constraints over Type values, resolving PolymorphicInteger variables
// against a shared VarTable as it goes. It is the only place in this module
// that mutates a VarTable's bindings.
type Unifier struct {
	Vars *VarTable
}

// NewUnifier constructs a Unifier over the given variable table.
func NewUnifier(vars *VarTable) *Unifier {
	return &Unifier{Vars: vars}
}

// IsIntegerLike reports whether t is one of the types a PolymorphicInteger
// is permitted to bind to: Integer, FieldElement, Bool, or another
// (possibly still-unbound) PolymorphicInteger.
func IsIntegerLike(t Type) bool {
	switch t.(type) {
	case IntegerType, FieldElementType, BoolType, PolyIntType:
		return true
	default:
		return false
	}
}

// Unify enforces that t1 and t2 describe the same type, binding any
// unbound PolymorphicInteger operands as needed. On success it returns
// true. On mismatch it returns false; it never panics on a type mismatch,
// only on a violated internal invariant (e.g. a VarTable index out of
// range).
func (u *Unifier) Unify(t1, t2 Type) bool {
	// Error/Unspecified absorb unconditionally.
	if IsErrorOrUnspecified(t1) || IsErrorOrUnspecified(t2) {
		return true
	}

	// The Constant sentinel succeeds only against compile-time-known
	// types, binding an unbound PolymorphicInteger to FieldElement(Constant).
	if _, ok := t2.(ConstantSentinel); ok {
		return u.unifyAgainstConstantSentinel(t1)
	}

	if _, ok := t1.(ConstantSentinel); ok {
		return u.unifyAgainstConstantSentinel(t2)
	}

	// PolymorphicInteger on either side.
	if p1, ok := t1.(PolyIntType); ok {
		return u.unifyPoly(p1, t2)
	}

	if p2, ok := t2.(PolyIntType); ok {
		return u.unifyPoly(p2, t1)
	}

	return u.unifyConcrete(t1, t2)
}

// unifyAgainstConstantSentinel succeeds exactly when t is FieldElement(Constant),
// Integer(Constant,_,_), or a PolymorphicInteger (which is then bound to
// FieldElement(Constant)).
func (u *Unifier) unifyAgainstConstantSentinel(t Type) bool {
	switch v := t.(type) {
	case FieldElementType:
		return v.Vis == Constant
	case IntegerType:
		return v.Vis == Constant
	case PolyIntType:
		if resolved, bound := u.Vars.Resolve(v); bound {
			return u.unifyAgainstConstantSentinel(resolved)
		}

		u.Vars.Bind(v.Var, FieldElementType{Vis: Constant})

		return true
	default:
		return false
	}
}

// unifyPoly handles the case where at least one operand is a
// PolymorphicInteger: if bound, recurse through its binding; otherwise bind
// it to the other side, provided the other side is itself integer-like.
func (u *Unifier) unifyPoly(p PolyIntType, other Type) bool {
	if resolved, bound := u.Vars.Resolve(p); bound {
		return u.Unify(resolved, other)
	}

	if op, ok := other.(PolyIntType); ok {
		if resolved, bound := u.Vars.Resolve(op); bound {
			return u.unifyPoly(p, resolved)
		}
		// Both unbound: bind one to the other: arbitrary but consistent
		// direction (bind the operand with the larger id to the smaller),
		// so repeated unification of the same pair is idempotent.
		if p.Var == op.Var {
			return true
		}

		if p.Var < op.Var {
			u.Vars.Bind(op.Var, p)
		} else {
			u.Vars.Bind(p.Var, op)
		}

		return true
	}

	if !IsIntegerLike(other) {
		return false
	}

	u.Vars.Bind(p.Var, other)

	return true
}

// unifyConcrete handles structural recursion and equality once neither
// operand is a PolymorphicInteger, the Constant sentinel, or
// Error/Unspecified.
func (u *Unifier) unifyConcrete(t1, t2 Type) bool {
	switch a := t1.(type) {
	case ArrayType:
		b, ok := t2.(ArrayType)
		if !ok || a.Vis != b.Vis {
			return false
		}

		if a.Size.IsFixed() != b.Size.IsFixed() {
			return false
		}

		if a.Size.IsFixed() && a.Size.Size() != b.Size.Size() {
			return false
		}

		return u.Unify(a.Elem, b.Elem)
	case TupleType:
		b, ok := t2.(TupleType)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}

		for i := range a.Elems {
			if !u.Unify(a.Elems[i], b.Elems[i]) {
				return false
			}
		}

		return true
	case StructType:
		b, ok := t2.(StructType)
		return ok && a.Def == b.Def
	default:
		return typesStructurallyEqual(t1, t2)
	}
}

// typesStructurallyEqual compares the remaining "flat" type kinds
// (FieldElement, Integer, Bool, Unit) for full structural equality
// including visibility.
func typesStructurallyEqual(t1, t2 Type) bool {
	switch a := t1.(type) {
	case FieldElementType:
		b, ok := t2.(FieldElementType)
		return ok && a.Vis == b.Vis
	case IntegerType:
		b, ok := t2.(IntegerType)
		return ok && a.Vis == b.Vis && a.Signed == b.Signed && a.Width == b.Width
	case BoolType:
		_, ok := t2.(BoolType)
		return ok
	case UnitType:
		_, ok := t2.(UnitType)
		return ok
	default:
		return false
	}
}

// MakeSubtypeOf is the directed form used at assignment/argument sites: any
// t is a subtype of u when t.Unify(u) would succeed, plus two additional
// rules: a compile-time constant flows into any visibility of the same
// base type, and a fixed-size array flows into a variable-sized array of a
// subtype element.
func (u *Unifier) MakeSubtypeOf(t, target Type) bool {
	if IsErrorOrUnspecified(t) || IsErrorOrUnspecified(target) {
		return true
	}

	if p, ok := t.(PolyIntType); ok {
		if resolved, bound := u.Vars.Resolve(p); bound {
			return u.MakeSubtypeOf(resolved, target)
		}
	}

	switch a := t.(type) {
	case FieldElementType:
		if a.Vis == Constant {
			if _, ok := target.(FieldElementType); ok {
				// A constant flows into a slot of any visibility.
				return true
			}
		}
	case IntegerType:
		if a.Vis == Constant {
			if b, ok := target.(IntegerType); ok {
				return a.Signed == b.Signed && a.Width == b.Width
			}
		}
	case ArrayType:
		if b, ok := target.(ArrayType); ok && a.Size.IsFixed() && !b.Size.IsFixed() {
			return u.MakeSubtypeOf(a.Elem, b.Elem)
		}
	}

	return u.Unify(t, target)
}
