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

// Package ids holds the opaque node-identifier types shared between the
// hir (NodeInterner) and types (struct method tables, polymorphic integer
// bindings) packages. Keeping them in their own tiny package avoids an
// import cycle between the two: hir needs types.Type, and types needs
// hir.FuncId for a struct's method table.
package ids

import "fmt"

// ExprId identifies an expression node held by a NodeInterner.
type ExprId uint32

func (id ExprId) String() string { return fmt.Sprintf("expr#%d", uint32(id)) }

// StmtId identifies a statement node held by a NodeInterner.
type StmtId uint32

func (id StmtId) String() string { return fmt.Sprintf("stmt#%d", uint32(id)) }

// FuncId identifies a function (including intrinsics/methods) known to a
// NodeInterner.
type FuncId uint32

func (id FuncId) String() string { return fmt.Sprintf("func#%d", uint32(id)) }

// dummyFuncId is the sentinel returned by DummyFuncId(); call-checking
// short-circuits to Type::Error whenever it sees this id, matching an
// unresolved call left behind by a failed name-resolution pass.
const dummyFuncId = ^FuncId(0)

// DummyFuncId returns the sentinel id marking an unresolved call.
func DummyFuncId() FuncId { return dummyFuncId }

// IsDummy checks whether this is the unresolved-call sentinel.
func (id FuncId) IsDummy() bool { return id == dummyFuncId }

// DefId identifies a definition (a let-binding, function parameter, loop
// variable, etc) known to a NodeInterner.
type DefId uint32

func (id DefId) String() string { return fmt.Sprintf("def#%d", uint32(id)) }

// TypeVariableId identifies the shared mutable binding cell of a single
// PolymorphicInteger. Allocated monotonically by
// NodeInterner.FreshTypeVariable.
type TypeVariableId uint32

func (id TypeVariableId) String() string { return fmt.Sprintf("tyvar#%d", uint32(id)) }
