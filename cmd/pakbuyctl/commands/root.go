// Package commands implements the pakbuyctl command tree.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pakbuy/backend/config"
	"github.com/pakbuy/backend/internal/app"
	"github.com/pakbuy/backend/internal/infrastructure/logging"
	"github.com/spf13/cobra"
)

// cli carries state shared by the subcommands of one invocation
type cli struct {
	regexOnly  bool
	logLevel   string
	components *app.Components
}

// NewRootCommand builds the pakbuyctl command tree
func NewRootCommand() *cobra.Command {
	state := &cli{}

	rootCmd := &cobra.Command{
		Use:   "pakbuyctl",
		Short: "Clean e-commerce product titles from the command line",
		Long: `pakbuyctl runs the hybrid title cleaner locally: Gemini AI when an API key
is configured, the brand-template extractor otherwise. Output is JSON on stdout;
logs go to stderr.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&state.regexOnly, "regex-only", false, "skip the AI provider and use the pattern extractor only")
	rootCmd.PersistentFlags().StringVar(&state.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(
		newCleanCommand(state),
		newBatchCommand(state),
		newSelfTestCommand(state),
	)

	return rootCmd
}

func (s *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if s.logLevel != "" {
		if !logging.ValidLevel(s.logLevel) {
			return fmt.Errorf("unknown log level %q", s.logLevel)
		}
		level = s.logLevel
	}

	logger := logging.New(logging.Config{
		Level:       level,
		Format:      "console",
		ServiceName: "pakbuyctl",
		Output:      cmd.ErrOrStderr(),
	})

	s.components = app.Build(cmd.Context(), cfg, logger, app.Options{RegexOnly: s.regexOnly})
	return nil
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// openInput opens path for reading; "-" means stdin
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
