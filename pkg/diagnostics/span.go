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

// Package diagnostics provides the structured error reporting used
// throughout the type checker: spans into source text, a taxonomy of
// diagnostic kinds, and both human-readable and JSON renderers.
package diagnostics

// Span represents a contiguous slice of the original source string. As in
// the upstream source-mapping package, indices are retained rather than a
// string slice so that the enclosing line can be recovered later by a
// renderer.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a new span, checking the internal invariant that start
// cannot exceed end.
func NewSpan(start, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the starting byte offset of this span.
func (s Span) Start() int { return s.start }

// End returns one past the final byte offset of this span.
func (s Span) End() int { return s.end }

// Merge computes the smallest span enclosing both s and other. Used when an
// infix expression's error must highlight both of its operands.
func (s Span) Merge(other Span) Span {
	start, end := s.start, s.end
	if other.start < start {
		start = other.start
	}

	if other.end > end {
		end = other.end
	}

	return Span{start, end}
}
