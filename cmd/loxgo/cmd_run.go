/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package main

import (
	"os"

	"github.com/loxgo/loxgo/pkg/errs"
	"github.com/loxgo/loxgo/pkg/vm"
	"github.com/spf13/cobra"
)

// runDebugTraceExecution is for the flag --trace.
var runDebugTraceExecution bool

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Runs a loxgo source file",
	Long:  `Compiles and runs a loxgo source file.`,
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			errs.ReportAndExit(errs.NewIOError("could not read %v: %v", args[0], err))
		}

		theVM := vm.New(os.Stdout)
		theVM.DebugTraceExecution = runDebugTraceExecution
		errs.ReportAndExit(theVM.Interpret(string(source)))
	},
}

func init() {
	runCmd.Flags().BoolVarP(&runDebugTraceExecution, "trace", "t",
		false, "Dump each instruction and the stack before executing it")
}
