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
package zkc

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zkc-lang/zkc/pkg/crate"
	"github.com/zkc-lang/zkc/pkg/diagnostics"
	"github.com/zkc-lang/zkc/pkg/typecheck"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] crate.json",
	Short: "type check a crate and report any errors found.",
	Long:  "Type check a crate (the JSON-serialised output of an upstream parse/name-resolution pass) and report any errors found.",
	Args:  cobra.ExactArgs(1),
	Run:   runCheckCmd,
}

func runCheckCmd(cmd *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer f.Close()

	interner, funcIds, err := crate.Load(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}

	diags := typecheck.CheckCrate(interner, funcIds)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		if err := diagnostics.EncodeJSON(os.Stdout, diags); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(3)
		}
	} else {
		diagnostics.RenderHuman(os.Stdout, diags)
	}

	if len(diags) > 0 {
		os.Exit(1)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "emit diagnostics as JSON")
}
