// SPDX-License-Identifier: MIT

// Package cli implements the lvmatrix command line.
package cli

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmatrix/config"
	// kernel registrations
	_ "github.com/katalvlaran/lvmatrix/distance"
	_ "github.com/katalvlaran/lvmatrix/linalg"
	_ "github.com/katalvlaran/lvmatrix/ops"
)

// Version is set at link time (-ldflags "-X .../internal/cli.Version=...").
var Version string

// settings holds the configuration resolved by the root command before any
// subcommand runs.
var settings = config.Default()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lvmatrix",
		Short: "Evaluate matrix calculations from the command line.",
		Long: `Evaluate matrix calculations from the command line.
Matrices are given as YAML flow sequences, e.g. "[[1,2],[3,4]]".`,
		SilenceUsage:      true,
		PersistentPreRunE: configure,
	}
	root.PersistentFlags().String("config", "", "YAML configuration file")
	root.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	root.PersistentFlags().Int("threads", 0, "Parallel-For worker count (0 keeps the configured value)")
	root.PersistentFlags().Int("width", -1, "clip output lines to this many columns (-1 detects the terminal)")

	root.AddCommand(newCalcCmd(), newInverseCmd(), newMtimesCmd(), newKernelsCmd(), newVersionCmd())

	return root
}

// configure loads --config, applies flag overrides and installs the result.
func configure(cmd *cobra.Command, _ []string) error {
	c := config.Default()
	if path := getString(cmd, "config"); path != "" {
		var err error
		if c, err = config.Load(path); err != nil {
			return err
		}
	}
	if n := getInt(cmd, "threads"); n > 0 {
		c.Threads = n
	}
	if getFlag(cmd, "verbose") {
		c.LogLevel = log.DebugLevel.String()
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.Apply()
	settings = c

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run executes the command line args against a fresh command tree, writing
// to out. Used by tests.
func run(out io.Writer, args ...string) error {
	root := newRootCmd()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)

	return root.Execute()
}

func getFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag %q: %v", name, err))
	}

	return v
}

func getInt(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag %q: %v", name, err))
	}

	return v
}

func getString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag %q: %v", name, err))
	}

	return v
}
