package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokenati/pkg/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check <files...>",
	Short: "Scan files and report lexical errors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	Root.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	session := driver.NewTokenati()
	session.SetLogger(logger)

	failed := 0
	for _, path := range args {
		res, err := session.TokenizeFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
			failed++
			continue
		}
		if !res.OK() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", res.Source.DisplayPath())
			res.DisplayErrors(cmd.ErrOrStderr())
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d tokens)\n", res.Source.DisplayPath(), len(res.Tokens))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
