package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soulfoods/morsels/internal/buildinfo"
	"github.com/soulfoods/morsels/internal/config"
	"github.com/soulfoods/morsels/internal/logging"
)

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	configPath string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "morsels",
		Short:   "Pink Morsels sales pipeline and dashboard",
		Version: buildinfo.Summary(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.FileName, "path to "+config.FileName)

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newProcessCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newRegionsCommand(opts))

	return rootCmd
}

// load resolves the configuration and builds a logger writing to the
// command's stderr. It also returns the project root (the config's directory).
func (o *globalOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, string, error) {
	path, err := filepath.Abs(o.configPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("resolving config path: %w", err)
	}

	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, nil, "", err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, "", err
	}
	return cfg, logging.New(cmd.ErrOrStderr(), level), filepath.Dir(path), nil
}
