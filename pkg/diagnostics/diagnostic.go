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
package diagnostics

import "fmt"

// Kind identifies which error rule produced a Diagnostic. Mirrors the error
// taxonomy of the type checker one-to-one.
type Kind uint8

const (
	// TypeMismatch signals an expression's type did not match what was
	// expected at its use site (e.g. an array index collection).
	TypeMismatch Kind = iota
	// ArityMismatch signals a function/method call supplied the wrong
	// number of arguments.
	ArityMismatch
	// NonHomogeneousArray signals an array literal whose elements do not
	// share a single unified type.
	NonHomogeneousArray
	// TypeCannotBeUsed signals a type which is well-formed in general but
	// disallowed in the specific place it was used (e.g. a witness value
	// used as a loop bound).
	TypeCannotBeUsed
	// Unstructured is the catch-all used by operator, cast, member and
	// method checking, which carries a free-form message.
	Unstructured
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case ArityMismatch:
		return "arity mismatch"
	case NonHomogeneousArray:
		return "non-homogeneous array"
	case TypeCannotBeUsed:
		return "type cannot be used here"
	case Unstructured:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a single structured error or warning produced by the type
// checker. Unlike a plain string error, it retains enough structure that a
// renderer can highlight exact source spans and an LSP client can turn it
// into a `Diagnostic` of its own.
type Diagnostic struct {
	Kind Kind
	// Span is the primary location this diagnostic is anchored to.
	Span Span
	// Msg is the primary human-readable message.
	Msg string
	// Context holds zero or more supplementary lines appended after Msg,
	// e.g. "note: consider a semicolon" style hints.
	Context []string
}

// New constructs a bare Unstructured diagnostic; the common case for
// operator/cast/member/method errors.
func New(span Span, msg string) Diagnostic {
	return Diagnostic{Kind: Unstructured, Span: span, Msg: msg}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(span Span, format string, args ...any) Diagnostic {
	return New(span, fmt.Sprintf(format, args...))
}

// WithContext returns a copy of d with an additional context line appended.
func (d Diagnostic) WithContext(line string) Diagnostic {
	d.Context = append(append([]string{}, d.Context...), line)
	return d
}

// TypeMismatchf constructs a TypeMismatch diagnostic.
func TypeMismatchf(span Span, expected, got string) Diagnostic {
	return Diagnostic{
		Kind: TypeMismatch,
		Span: span,
		Msg:  fmt.Sprintf("expected type %s, but found type %s", expected, got),
	}
}

// ArityMismatchf constructs an ArityMismatch diagnostic.
func ArityMismatchf(span Span, expected, found int) Diagnostic {
	return Diagnostic{
		Kind: ArityMismatch,
		Span: span,
		Msg:  fmt.Sprintf("expected %d argument(s), but found %d", expected, found),
	}
}

// NonHomogeneousArrayf constructs a NonHomogeneousArray diagnostic. The
// indices are 1-based per spec, matching the original implementation's user-
// facing message convention.
func NonHomogeneousArrayf(firstSpan Span, firstType string, firstIndex int,
	secondSpan Span, secondType string, secondIndex int) Diagnostic {
	msg := fmt.Sprintf(
		"non-homogeneous array: element %d has type %s, but element %d has type %s",
		firstIndex, firstType, secondIndex, secondType)

	return Diagnostic{
		Kind: NonHomogeneousArray,
		Span: firstSpan.Merge(secondSpan),
		Msg:  msg,
	}
}

// TypeCannotBeUsedf constructs a TypeCannotBeUsed diagnostic.
func TypeCannotBeUsedf(span Span, typ, place string) Diagnostic {
	return Diagnostic{
		Kind: TypeCannotBeUsed,
		Span: span,
		Msg:  fmt.Sprintf("the type %s cannot be used in a %s", typ, place),
	}
}

// Error implements the error interface so a Diagnostic can be handed to
// ordinary Go error-handling code (e.g. wrapped, logged via logrus).
func (d Diagnostic) Error() string {
	msg := d.Msg
	for _, c := range d.Context {
		msg += "\n  " + c
	}

	return fmt.Sprintf("%d:%d: %s", d.Span.Start(), d.Span.End(), msg)
}
