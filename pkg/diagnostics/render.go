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

import (
	"fmt"
	"io"
	"os"

	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Log is the package-level logger used for pass-level tracing (which
// function is currently being checked). The CLI wires its level from
// --verbose/--quiet.
var Log log.FieldLogger = log.StandardLogger()

// jsonDiagnostic is the wire shape used by both --json output and the LSP
// publisher; it deliberately flattens Span into start/end so downstream
// tools don't need to understand this package's internal types.
type jsonDiagnostic struct {
	Kind    string   `json:"kind"`
	Start   int      `json:"start"`
	End     int      `json:"end"`
	Message string   `json:"message"`
	Context []string `json:"context,omitempty"`
}

// EncodeJSON writes diagnostics as a JSON array using the fast
// segmentio/encoding/json codec, matching the teacher's preference for that
// package over encoding/json when serializing compiler artifacts.
func EncodeJSON(w io.Writer, diags []Diagnostic) error {
	out := make([]jsonDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = jsonDiagnostic{
			Kind:    d.Kind.String(),
			Start:   d.Span.Start(),
			End:     d.Span.End(),
			Message: d.Msg,
			Context: d.Context,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

// RenderHuman writes a human-oriented rendering of diags to w. Colour is
// only used when w is the process's stdout/stderr and that stream is an
// interactive terminal with a known width, detected via golang.org/x/term
// exactly as the teacher's CLI layer guards its own table rendering.
func RenderHuman(w io.Writer, diags []Diagnostic) {
	colour := isColourTerminal(w)
	//
	for _, d := range diags {
		if colour {
			fmt.Fprintf(w, "\x1b[31merror\x1b[0m[%d:%d]: %s\n", d.Span.Start(), d.Span.End(), d.Msg)
		} else {
			fmt.Fprintf(w, "error[%d:%d]: %s\n", d.Span.Start(), d.Span.End(), d.Msg)
		}

		for _, c := range d.Context {
			fmt.Fprintf(w, "  = note: %s\n", c)
		}
	}
}

func isColourTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	if !term.IsTerminal(int(f.Fd())) {
		return false
	}

	width, _, err := term.GetSize(int(f.Fd()))

	return err == nil && width > 0
}
