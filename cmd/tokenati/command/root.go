package command

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var logger = slog.Default()

// Root is the tokenati command tree.
var Root = &cobra.Command{
	Use:   "tokenati",
	Short: "Context-sensitive JavaScript/TypeScript tokenizer",
	Long: `tokenati tokenizes JavaScript and TypeScript sources with the
context-sensitivity a single-pass lexer needs: regex literals versus
division, template literal nesting, and statement versus expression braces.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

func init() {
	registerLoggingFlags(Root.PersistentFlags())

	viper.SetEnvPrefix("TOKENATI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("log-level", Root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", Root.PersistentFlags().Lookup("log-format"))
}

func registerLoggingFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-format", "text", "Log format (json, text)")
}

// setupLogging builds the process logger from the configured flags, with
// TOKENATI_LOG_LEVEL and TOKENATI_LOG_FORMAT as the environment overrides.
// Unknown values fall back to the defaults.
func setupLogging() {
	var level slog.Level
	switch strings.ToLower(viper.GetString("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(viper.GetString("log-format")) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}
