/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxgo/loxgo/pkg/vm"
)

// maxREPLLineBytes mirrors spec.md §6: a REPL line is read up to 1024 bytes.
const maxREPLLineBytes = 1024

var replDebugTraceExecution bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Starts an interactive read-eval-print loop",
	Long: `Starts the loxgo REPL: prints a '> ' prompt, reads one line from
standard input, compiles and runs it, and repeats until EOF. A
compile-time or runtime error in one line is reported and the REPL
continues with the next line; it is not a reason to exit.`,
	Args: cobra.ExactArgs(0),

	Run: func(cmd *cobra.Command, args []string) {
		theVM := vm.New(os.Stdout)
		theVM.DebugTraceExecution = replDebugTraceExecution

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, maxREPLLineBytes), maxREPLLineBytes)

		fmt.Print("> ")
		for scanner.Scan() {
			line := scanner.Text()
			if err := theVM.Interpret(line); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
			fmt.Print("> ")
		}
		fmt.Println()
	},
}

func init() {
	replCmd.Flags().BoolVarP(&replDebugTraceExecution, "trace", "t",
		false, "Dump each instruction and the stack before executing it")
}
