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
	"github.com/spf13/cobra"
)

const AppName = "lemdat"

// Execute builds and runs the root command, dispatching to one of the six
// subcommands below. Subcommand selection, flag parsing, and usage help
// are handled by cobra itself.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - Lemmings DAT graphics codec",
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")

	rootCmd.AddCommand(DefineExtractSetCommand())
	rootCmd.AddCommand(DefineCreateSetCommand())
	rootCmd.AddCommand(DefineExtractMainCommand())
	rootCmd.AddCommand(DefineCreateMainCommand())
	rootCmd.AddCommand(DefineExtractDatCommand())
	rootCmd.AddCommand(DefineCreateDatCommand())

	return rootCmd.Execute()
}

func logLevel(cmd *cobra.Command) string {
	level, _ := cmd.Flags().GetString("log-level")
	return level
}
