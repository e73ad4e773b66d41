// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			switch info, ok := debug.ReadBuildInfo(); {
			case Version != "":
				// built with -ldflags
				fmt.Fprintln(out, "lvmatrix", Version)
			case ok:
				// built via "go install"
				fmt.Fprintln(out, "lvmatrix", info.Main.Version)
			default:
				fmt.Fprintln(out, "lvmatrix (unknown version)")
			}
		},
	}
}
