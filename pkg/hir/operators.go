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

// Package hir defines the typed-AST store the type checker reads from and
// writes to: the NodeInterner abstraction, its pre-type-check expression and
// statement shapes (addressed by opaque ExprId/StmtId), and function
// metadata (addressed by FuncId).
package hir

// BinaryOp enumerates the infix operators recognised by the checker.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	BitAnd
	BitOr
	BitXor
	Shl
	Shr
)

// IsComparator reports whether op is one of the six comparison operators,
// which are dispatched to comparator_operand_type_rules rather than the
// general infix_operand_type_rules.
func (op BinaryOp) IsComparator() bool {
	switch op {
	case Equal, NotEqual, Less, LessEqual, Greater, GreaterEqual:
		return true
	default:
		return false
	}
}

// IsCommutative reports whether op is commutative, i.e. whether swapping
// its operands leaves the result unchanged.
func (op BinaryOp) IsCommutative() bool {
	switch op {
	case Add, Mul, Equal, NotEqual, BitAnd, BitOr, BitXor:
		return true
	default:
		return false
	}
}

func (op BinaryOp) String() string {
	names := [...]string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">=", "&", "|", "^", "<<", ">>"}
	if int(op) < len(names) {
		return names[op]
	}

	return "?"
}

// UnaryOp enumerates the prefix operators recognised by the checker.
type UnaryOp uint8

const (
	Negate UnaryOp = iota
	Not
)

func (op UnaryOp) String() string {
	if op == Negate {
		return "-"
	}

	return "!"
}
