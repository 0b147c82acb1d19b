package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tokenati/pkg/driver"
	"tokenati/pkg/source"
)

var (
	tokensFormat string
	tokensExpr   string
	tokensWatch  bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Dump the token stream of a file, an expression, or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().StringVar(&tokensFormat, "format", "text", "Output format (text, json, yaml)")
	tokensCmd.Flags().StringVarP(&tokensExpr, "expr", "e", "", "Tokenize the given expression and exit")
	tokensCmd.Flags().BoolVar(&tokensWatch, "watch", false, "Re-dump the token stream whenever the file changes")
	Root.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := driver.ParseFormat(tokensFormat)
	if err != nil {
		return err
	}

	session := driver.NewTokenati()
	session.SetLogger(logger)

	if tokensExpr != "" {
		if tokensWatch {
			return fmt.Errorf("--watch needs a file argument")
		}
		return dump(cmd, session.TokenizeString(tokensExpr), format)
	}

	if len(args) == 0 {
		if tokensWatch {
			return fmt.Errorf("--watch needs a file argument")
		}
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return dump(cmd, session.TokenizeSource(source.NewStdinSource(string(content))), format)
	}

	path := args[0]
	if tokensWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := session.Watch(ctx, path, func(res *driver.Result) {
			if err := dump(cmd, res, format); err != nil {
				logger.Error("render failed", "error", err)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout())
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	res, err := session.TokenizeFile(path)
	if err != nil {
		return err
	}
	return dump(cmd, res, format)
}

// dump renders tokens to stdout and diagnostics to stderr, so piped output
// stays machine-readable.
func dump(cmd *cobra.Command, res *driver.Result, format driver.Format) error {
	if err := res.Render(cmd.OutOrStdout(), format); err != nil {
		return err
	}
	if !res.OK() {
		res.DisplayErrors(cmd.ErrOrStderr())
	}
	return nil
}
