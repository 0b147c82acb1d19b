package command

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is stamped by the release build; the default marks a source build.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tokenati %s %s/%s\n", Version, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	Root.AddCommand(versionCmd)
}
