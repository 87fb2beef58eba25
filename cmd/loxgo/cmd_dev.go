/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package main

import "github.com/spf13/cobra"

var devCmd = &cobra.Command{
	Use:   "dev <subcommand>",
	Short: "Collection of subcommands for developing loxgo itself",
	Long: `Collection of subcommands useful for developing loxgo itself.
If you are not working to improve the 'loxgo' tool, you probably
don't need to look here.`,
}
