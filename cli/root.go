// Package cli implements the askboard command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cppla/askboard/config"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// session carries state resolved once per invocation.
type session struct {
	configPath string
	jsonMode   bool
	cfg        config.AppConfig
}

// NewRootCmd creates the top-level "askboard" command with global flags
// and all subcommands registered. Running it without a subcommand serves.
func NewRootCmd() *cobra.Command {
	s := &session{}
	root := &cobra.Command{
		Use:           "askboard",
		Short:         "A question-and-answer board",
		Long:          "askboard serves a question board over HTTP and manages its stored corpus.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s.cfg = config.Read(s.configPath)
			config.Set(s.cfg)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&s.configPath, "config", config.DefaultPath, "JSON config file")
	root.PersistentFlags().BoolVar(&s.jsonMode, "json", false, "output in JSON format")

	serve := newServeCmd(s)
	root.RunE = serve.RunE

	root.AddCommand(serve)
	root.AddCommand(newSimilarCmd(s))
	root.AddCommand(newExportCmd(s))
	root.AddCommand(newImportCmd(s))
	root.AddCommand(newTokenCmd(s))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// cliLogger reports warnings to w in console format, keeping stdout free
// for command output.
func cliLogger(w io.Writer) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zap.WarnLevel))
}
