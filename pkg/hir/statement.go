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

// HirStatement is the pre-type-check shape of one statement within a
// HirBlock.
type HirStatement interface {
	isHirStatement()
}

// HirLet is `let pattern [: Type] = expression;`, binding pattern's
// definition id to expression's type. Type is nil when the let has no
// declared-type annotation, in which case the binding's type is simply
// inferred from the expression. When Type is non-nil the expression must be
// a subtype of it — this is the primary site where an integer literal's
// PolymorphicInteger gets resolved against a concrete annotation.
type HirLet struct {
	Target     ids.DefId
	Expression ids.ExprId
	Type       types.Type
}

// HirConstrain is `constrain expression;`, an assertion statement whose
// expression must check as Bool. Supplements spec.md per SPEC_FULL.md §C.1:
// the original implementation this spec distills from has such a statement
// kind and it is not excluded by any Non-goal.
type HirConstrain struct{ Expression ids.ExprId }

// HirExpressionStatement is a bare expression used as a statement; unless
// it is the final statement of its enclosing block its type must unify
// with Unit.
type HirExpressionStatement struct{ Expression ids.ExprId }

// HirErrorStatement marks a statement earlier phases already know is
// broken.
type HirErrorStatement struct{}

func (HirLet) isHirStatement()                 {}
func (HirConstrain) isHirStatement()           {}
func (HirExpressionStatement) isHirStatement() {}
func (HirErrorStatement) isHirStatement()      {}
