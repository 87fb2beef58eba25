/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxgo/loxgo/pkg/errs"
	"github.com/loxgo/loxgo/pkg/scanner"
	"github.com/loxgo/loxgo/pkg/token"
)

var devScanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan the source code and print the tokens",
	Long:  `Scans the source file and prints the token stream. This is only useful for testing when developing loxgo itself.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			errs.ReportAndExit(errs.NewIOError("could not read %v: %v", args[0], err))
		}

		s := scanner.New(string(source))
		line := -1
		for {
			tok := s.Token()
			if tok.Line != line {
				fmt.Printf("%4d ", tok.Line)
				line = tok.Line
			} else {
				fmt.Print("   | ")
			}
			fmt.Printf("%-14v '%v'\n", tok.Kind, tok.Lexeme)

			if tok.Kind == token.EOF {
				break
			}
		}

		errs.ReportAndExit(nil)
	},
}
