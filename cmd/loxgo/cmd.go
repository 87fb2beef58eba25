/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "loxgo",
	SilenceUsage: true,
	Short:        "loxgo is a bytecode interpreter for a small scripting language",
	Long: `loxgo is a single-pass, bytecode-compiled interpreter for a small
dynamically-typed scripting language, in the tradition of clox from
Crafting Interpreters.

Run with no arguments to drop into the REPL, or give it a source file
to run directly.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			runCmd.Run(cmd, args)
			return
		}
		replCmd.Run(cmd, args)
	},
}

func init() {
	devCmd.AddCommand(devScanCmd, devDisassembleCmd, devTestCmd)
	rootCmd.AddCommand(runCmd, replCmd, devCmd)
}
