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
	"path/filepath"

	"github.com/ostafen/lemdat/internal/gfxset"
	"github.com/ostafen/lemdat/internal/logger"
	"github.com/spf13/cobra"
)

func DefineCreateSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-set <script>",
		Short: "Build a graphics set's header/data DAT pair from a script",
		Long: `The 'create-set' command parses a script written by 'extract-set' (or by hand) and
rebuilds the header file and data file it names, reading BMPs relative to the script's directory
unless --bmp-dir overrides that.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunCreateSet,
	}
	cmd.Flags().String("bmp-dir", "", "directory the script's BMP references are resolved against (defaults to the script's own directory)")
	return cmd
}

func RunCreateSet(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]

	bmpDir, _ := cmd.Flags().GetString("bmp-dir")
	if bmpDir == "" {
		bmpDir = filepath.Dir(scriptPath)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(logLevel(cmd)))

	return gfxset.Create(gfxset.CreateOptions{
		ScriptPath: scriptPath,
		OutDir:     bmpDir,
		Log:        log,
	})
}
