/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxgo/loxgo/pkg/bytecode"
	"github.com/loxgo/loxgo/pkg/compiler"
	"github.com/loxgo/loxgo/pkg/errs"
)

var devDisassembleCmd = &cobra.Command{
	Use:   "disassemble <path>",
	Short: "Disassemble a loxgo source file",
	Long: `Compiles a loxgo source file and disassembles the resulting chunk,
without running it. There is only ever one chunk: this language has no
user-defined procedures, so the --all/--constants flags do not select
chunks; either one also prints the chunk's constant pool before the
disassembly.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			errs.ReportAndExit(errs.NewIOError("could not read %v: %v", args[0], err))
		}

		chunk := bytecode.NewChunk()
		if cErr := compiler.Compile(string(source), chunk, disassembleIntern); cErr != nil {
			errs.ReportAndExit(cErr)
		}

		fmt.Printf("Disassembling %s\n", args[0])
		fmt.Printf("%v bytes of code, %v constants\n", len(chunk.Code), len(chunk.Constants))

		if flagDevDisassembleConstants || flagDevDisassembleAll {
			fmt.Println("\nConstants:")
			for i, c := range chunk.Constants {
				fmt.Printf("    %5d: %v\n", i, c)
			}
		}

		fmt.Println()
		bytecode.Disassemble(chunk, args[0], os.Stdout)

		errs.ReportAndExit(nil)
	},
}

// disassembleIntern is a throwaway string interner: disassembly only prints
// constants, it never compares them, so unlike the VM's real intern table
// there is no need to deduplicate across calls.
func disassembleIntern(chars string) *bytecode.ObjString {
	return bytecode.Obj(bytecode.NewObjString(chars, 0, nil)).AsString()
}

var flagDevDisassembleAll bool
var flagDevDisassembleConstants bool

func init() {
	devDisassembleCmd.Flags().BoolVarP(&flagDevDisassembleAll, "all", "a",
		false, "Also print the constant pool")

	devDisassembleCmd.Flags().BoolVarP(&flagDevDisassembleConstants, "constants", "c",
		false, "List all constants in the compiled chunk")
}
