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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zkc-lang/zkc/pkg/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "run the zkc language server over stdio.",
	Long:  "Run the zkc language server, publishing type-check diagnostics over stdio for an editor to consume.",
	Run:   runLspCmd,
}

type stdioReadWriteCloser struct{}

func (stdioReadWriteCloser) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioReadWriteCloser) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioReadWriteCloser) Close() error                { return nil }

func runLspCmd(_ *cobra.Command, _ []string) {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync() //nolint:errcheck

	server := lsp.NewServer(stdioReadWriteCloser{}, logger)

	if err := server.Run(context.Background()); err != nil {
		logger.Error("lsp server exited", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(lspCmd)
}
