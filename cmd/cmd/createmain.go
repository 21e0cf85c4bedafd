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

	"github.com/ostafen/lemdat/internal/logger"
	"github.com/ostafen/lemdat/internal/maindat"
	"github.com/spf13/cobra"
)

func DefineCreateMainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-main",
		Short: "Build main.dat from BMPs and opaque blobs",
		Long: `The 'create-main' command is the inverse of 'extract-main': it reads the filmstrip
BMPs and opaque blobs a prior extract-main wrote, validates each filmstrip's dimensions against
the configured animation-geometry table, and recompresses them into main.dat's section sequence.
--xmas/--christmas selects the alternative holiday-release table.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunCreateMain,
	}
	cmd.Flags().StringP("in-dir", "i", ".", "directory the BMPs and blobs are read from")
	cmd.Flags().StringP("out-dir", "o", ".", "directory to write main.dat into")
	cmd.Flags().Bool("xmas", false, "use the Christmas-release animation table")
	cmd.Flags().Bool("christmas", false, "alias of --xmas")
	return cmd
}

func RunCreateMain(cmd *cobra.Command, _ []string) error {
	inDir, _ := cmd.Flags().GetString("in-dir")
	outDir, _ := cmd.Flags().GetString("out-dir")
	xmas, _ := cmd.Flags().GetBool("xmas")
	christmas, _ := cmd.Flags().GetBool("christmas")

	tables := maindat.DefaultTables
	if xmas || christmas {
		tables = maindat.XmasTables
	}

	log := logger.New(os.Stdout, logger.ParseLevel(logLevel(cmd)))

	return maindat.Create(maindat.CreateOptions{
		InDir:    inDir,
		DataPath: filepath.Join(outDir, "main.dat"),
		Tag:      "main",
		Tables:   tables,
		Log:      log,
	})
}
