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
	"github.com/zkc-lang/zkc/pkg/ids"
	"github.com/zkc-lang/zkc/pkg/types"
)

// Param is one formal parameter of a function: the definition id its
// argument type gets bound to, plus its declared type.
type Param struct {
	Name ids.DefId
	Type types.Type
}

// FunctionMeta is everything the checker needs to know about a function
// (or method, or intrinsic) to check calls against it, matching
// `function_meta(FuncId)` of spec.md §6.
type FunctionMeta struct {
	Parameters []Param
	ReturnType types.Type
	// Body is the function's top-level block expression, checked by
	// Checker.CheckFunction. It is only meaningful when HasBody is true;
	// intrinsics leave it at its zero value.
	Body ids.ExprId
	// HasBody distinguishes an intrinsic/native function (no HIR body to
	// walk) from a user-defined one with an empty block.
	HasBody bool
}
