// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmatrix/matrix"
)

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [flags] kernel matrix...",
		Short: "Run a registered kernel over matrix literals.",
		Long: `Run a registered kernel (see "lvmatrix kernels") over matrix literals.
With --ret orig the first operand is overwritten and printed; with
--ret link the result is a view that is evaluated while printing.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ret, err := matrix.ParseRet(getString(cmd, "ret"))
			if err != nil {
				return err
			}
			res, err := evaluate(args[0], ret, args[1:]...)
			if err != nil {
				return err
			}
			return printMatrix(cmd, res)
		},
	}
	cmd.Flags().String("ret", "new", "materialization: new | link | orig")

	return cmd
}

func newInverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inverse matrix",
		Short: "Invert a square matrix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := evaluate("inv", matrix.RetNew, args...)
			if err != nil {
				return err
			}
			return printMatrix(cmd, res)
		},
	}
}

func newMtimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mtimes a b",
		Short: "Multiply two matrices.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := evaluate("mtimes", matrix.RetNew, args...)
			if err != nil {
				return err
			}
			return printMatrix(cmd, res)
		},
	}
}

func newKernelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List the registered kernels.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(matrix.Kernels(), "\n"))
		},
	}
}

// evaluate resolves kernel by name and applies it to the parsed literals.
func evaluate(kernel string, ret matrix.Ret, literals ...string) (matrix.Matrix, error) {
	fn, err := matrix.Kernel(kernel)
	if err != nil {
		return nil, err
	}
	args := make([]matrix.Matrix, len(literals))
	for i, lit := range literals {
		if args[i], err = parseMatrix(lit); err != nil {
			return nil, err
		}
	}
	log.WithFields(log.Fields{"kernel": kernel, "ret": ret, "operands": len(args)}).Debug("cli: evaluate")

	return fn(args, ret)
}

func printMatrix(cmd *cobra.Command, m matrix.Matrix) error {
	_, err := fmt.Fprint(cmd.OutOrStdout(), matrix.FormatWidth(m, outputWidth(getInt(cmd, "width"))))
	return err
}
