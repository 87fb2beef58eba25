/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package main

import (
	"github.com/loxgo/loxgo/pkg/errs"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// cobra itself only returns errors for usage problems (unknown flag,
		// wrong arg count), which is a bad-usage condition by spec.md §6.
		errs.ReportAndExit(errs.NewBadUsage("%v", err))
	}
}
