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
	"fmt"
	"os"
	"path/filepath"

	"github.com/ostafen/lemdat/internal/gfxset"
	"github.com/ostafen/lemdat/internal/logger"
	"github.com/spf13/cobra"
)

func DefineExtractSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract-set <n>",
		Short: "Extract a graphics set into BMPs and a script",
		Long: `The 'extract-set' command reads one graphics set's header file ("ground<n>o.dat")
and data file ("vgagr<n>.dat") and writes a terrain/object BMP (plus mask) per slot and a
"theme<n>.txt" script that drives 'create-set' back to the original pair.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunExtractSet,
	}
	cmd.Flags().StringP("out-dir", "o", ".", "directory to write the BMPs and script into")
	cmd.Flags().StringP("dir", "d", ".", "directory the ground<n>o.dat/vgagr<n>.dat pair is read from")
	cmd.Flags().Bool("ega", false, "build the 16-colour palette from EGA entries instead of VGA")
	cmd.Flags().Bool("combined-mask", false, "write one image+mask BMP per slot instead of a separate mask file")
	return cmd
}

func RunExtractSet(cmd *cobra.Command, args []string) error {
	n := args[0]

	dir, _ := cmd.Flags().GetString("dir")
	outDir, _ := cmd.Flags().GetString("out-dir")
	useEGA, _ := cmd.Flags().GetBool("ega")
	combinedMask, _ := cmd.Flags().GetBool("combined-mask")

	log := logger.New(os.Stdout, logger.ParseLevel(logLevel(cmd)))

	return gfxset.Extract(gfxset.ExtractOptions{
		HeaderPath:   filepath.Join(dir, fmt.Sprintf("ground%so.dat", n)),
		DataPath:     filepath.Join(dir, fmt.Sprintf("vgagr%s.dat", n)),
		OutDir:       outDir,
		Tag:          fmt.Sprintf("set%s", n),
		ScriptName:   fmt.Sprintf("theme%s.txt", n),
		UseEGA:       useEGA,
		CombinedMask: combinedMask,
		Log:          log,
	})
}
