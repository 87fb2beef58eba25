/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package main

import (
	"github.com/spf13/cobra"

	"github.com/loxgo/loxgo/pkg/errs"
	"github.com/loxgo/loxgo/pkg/langtest"
)

var flagDevTestSuite string

var devTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the loxgo golden-file test suite",
	Long:  `Runs loxgo's own golden-file test suite (i.e., meant to test loxgo itself).`,
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		err := langtest.ExecuteSuite(flagDevTestSuite)
		errs.ReportAndExit(err)
	},
}

func init() {
	devTestCmd.Flags().StringVarP(&flagDevTestSuite, "suite", "s",
		"./pkg/langtest/testdata", "Path to the test suite to run")
}
