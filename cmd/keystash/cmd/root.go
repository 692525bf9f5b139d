package cmd

import (
	"log/slog"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/jmcleod/keystash/internal/config"
	"github.com/jmcleod/keystash/internal/platform"
)

// NewRootCommand builds the keystash command tree. Each call returns a fresh
// tree with its own flag state.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{clipboard: platform.NewClipboard()})
}

func newRootCommand(a *app) *cobra.Command {
	var (
		dataDir string
		backend string
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:   "keystash",
		Short: "KeyStash is a local encrypted credential vault",
		Long: `KeyStash keeps service, username, email and password records in a single
file encrypted under your master password.

Run 'keystash passwd' first to set the master password.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("backend") {
				cfg.Backend = backend
			}
			if verbose {
				cfg.LogLevel = slog.LevelDebug
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
			a.prompt = newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			if err := platform.DisableCoreDumps(); err != nil {
				a.logger.Warn("could not disable core dumps", "error", err)
			}
			a.logger.Debug("config loaded", "data_dir", cfg.DataDir, "backend", cfg.Backend)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the vault and master password hash")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Vault backend: file or bolt")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newAddCmd(a),
		newSearchCmd(a),
		newGetCmd(a),
		newRemoveCmd(a),
		newPasswdCmd(a),
		newGenerateCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		memguard.Purge()
		os.Exit(1)
	}
}
