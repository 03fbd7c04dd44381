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

import (
	"fmt"

	"github.com/zkc-lang/zkc/pkg/ids"
)

// Type is the tagged union at the heart of the checker's type algebra. It
// deliberately has no methods beyond String(): unlike the teacher's own
// ast.Type interface (which bundles SubtypeOf/LeastUpperBound/Width directly
// onto the type), PolymorphicInteger resolution requires a table lookup, so
// the relational operations (Unify, MakeSubtypeOf) live in a Unifier that is
// handed a Type value rather than being a method on it.
type Type interface {
	fmt.Stringer
	isType()
}

// ============================================================================
// FieldElement
// ============================================================================

// FieldElementType is an element of the field underlying the proof system,
// tagged with a visibility.
type FieldElementType struct{ Vis Visibility }

func (FieldElementType) isType() {}
func (t FieldElementType) String() string {
	return fmt.Sprintf("Field<%s>", t.Vis)
}

// ============================================================================
// Integer
// ============================================================================

// IntegerType is a fixed-width, signed-or-unsigned integer, tagged with a
// visibility. Width ranges over 1..=127 inclusive.
type IntegerType struct {
	Vis    Visibility
	Signed bool
	Width  uint8
}

func (IntegerType) isType() {}
func (t IntegerType) String() string {
	sign := "u"
	if t.Signed {
		sign = "i"
	}

	return fmt.Sprintf("%s%d<%s>", sign, t.Width, t.Vis)
}

// ============================================================================
// Bool
// ============================================================================

// BoolType is the two-valued boolean type. Booleans have no independent
// visibility tag of their own in this algebra: a boolean's "privateness" is
// carried by whichever field element it was compared out of, matching the
// source language's treatment of comparisons as always-private predicates.
type BoolType struct{}

func (BoolType) isType()        {}
func (BoolType) String() string { return "bool" }

// ============================================================================
// Array
// ============================================================================

// ArraySize is either a statically-known length or Variable, the latter
// produced only by `for` expressions.
type ArraySize struct {
	fixed bool
	size  uint
}

// FixedSize constructs a known-length array size.
func FixedSize(n uint) ArraySize { return ArraySize{true, n} }

// VariableSize is the array size produced by `for` expressions; it is a
// compiler invariant violation for it to appear in a function parameter
// position.
var VariableSize = ArraySize{false, 0}

// IsFixed reports whether this size is statically known.
func (s ArraySize) IsFixed() bool { return s.fixed }

// Size returns the statically-known length. Panics if IsFixed() is false.
func (s ArraySize) Size() uint {
	if !s.fixed {
		panic("array size is not fixed")
	}

	return s.size
}

func (s ArraySize) String() string {
	if !s.fixed {
		return "_"
	}

	return fmt.Sprintf("%d", s.size)
}

// ArrayType is a homogeneous array of a given (possibly variable) size.
type ArrayType struct {
	Vis  Visibility
	Size ArraySize
	Elem Type
}

func (ArrayType) isType() {}
func (t ArrayType) String() string {
	return fmt.Sprintf("[%s; %s]", t.Elem, t.Size)
}

// ============================================================================
// Tuple
// ============================================================================

// TupleType is an ordered, fixed-arity heterogeneous sequence of types.
type TupleType struct{ Elems []Type }

func (TupleType) isType() {}
func (t TupleType) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}

		s += e.String()
	}

	return s + ")"
}

// ============================================================================
// Struct
// ============================================================================

// StructType is a handle to a (shared) struct definition, tagged with a
// visibility. Two StructType values are considered the same type iff they
// share the same *StructDefinition pointer, never by structural comparison
// of fields.
type StructType struct {
	Vis Visibility
	Def *StructDefinition
}

func (StructType) isType() {}
func (t StructType) String() string {
	return fmt.Sprintf("%s<%s>", t.Def.Name, t.Vis)
}

// ============================================================================
// PolymorphicInteger
// ============================================================================

// PolyIntType represents the not-yet-resolved type of an integer literal.
// Its actual binding is NOT stored inline (there is no shared pointer/cell
// here): it lives in a VarTable, addressed by Var. This is the "indices into
// a unifier-owned table" design called for when the aliasing cell can't be a
// literal Go pointer embedded in an immutable Type value.
type PolyIntType struct{ Var ids.TypeVariableId }

func (PolyIntType) isType() {}
func (t PolyIntType) String() string {
	return fmt.Sprintf("int?%s", t.Var)
}

// ============================================================================
// Sentinels
// ============================================================================

// UnitType is the type of a statement and of an if-expression without an
// else branch.
type UnitType struct{}

func (UnitType) isType()        {}
func (UnitType) String() string { return "()" }

// UnspecifiedType absorbs all constraints, used for expressions whose type
// genuinely does not matter to any caller (currently unused by any rule in
// this checker, but retained as a distinct sentinel from Error per spec so
// that future rules can distinguish "deliberately don't care" from "already
// broken").
type UnspecifiedType struct{}

func (UnspecifiedType) isType()        {}
func (UnspecifiedType) String() string { return "_" }

// ErrorType marks an expression that already failed to type check. It
// absorbs all further constraints so that a single pass can surface more
// than one independent diagnostic without cascading false positives.
type ErrorType struct{}

func (ErrorType) isType()        {}
func (ErrorType) String() string { return "<error>" }

// ConstantSentinel is the pseudo-type used as the RHS of Unify to express
// "this must be known at compile time". It is never the type of an
// expression; it exists purely as a unification target.
type ConstantSentinel struct{}

func (ConstantSentinel) isType()        {}
func (ConstantSentinel) String() string { return "const" }

// IsErrorOrUnspecified reports whether t is one of the two "stop checking,
// don't cascade" sentinels.
func IsErrorOrUnspecified(t Type) bool {
	switch t.(type) {
	case ErrorType, UnspecifiedType:
		return true
	default:
		return false
	}
}
