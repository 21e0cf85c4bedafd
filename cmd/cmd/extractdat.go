// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"os"

	"github.com/ostafen/lemdat/internal/datsplit"
	"github.com/ostafen/lemdat/internal/logger"
	"github.com/spf13/cobra"
)

func DefineExtractDatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract-dat <name>",
		Short: "Split any DAT file into its raw, decompressed sections",
		Long: `The 'extract-dat' command peels a generic ".dat" container apart one section at a
time without interpreting the decompressed bytes, writing "<name>.000", "<name>.001", and so on
until a read reports end of file. Use this on a DAT file whose internal layout isn't one of the
known formats, or to inspect a section's raw bytes.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunExtractDat,
	}
	return cmd
}

func RunExtractDat(cmd *cobra.Command, args []string) error {
	log := logger.New(os.Stdout, logger.ParseLevel(logLevel(cmd)))
	return datsplit.Extract(args[0], log)
}
