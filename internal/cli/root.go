package cli

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"festival-quiz/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// options is shared by every subcommand; cfg is filled in PersistentPreRunE.
type options struct {
	configPath string
	serverURL  string
	cfg        config.Config
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "festival-quiz",
		Short:        "Festival quiz: shared theme, drafts, play and live ranking",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", "", "quiz server base URL (overrides config)")
	cmd.AddCommand(
		newThemeCmd(opts),
		newDraftCmd(opts),
		newPlayCmd(opts),
		newRankingCmd(opts),
		newResetCmd(opts),
		NewServeCmd(opts),
		NewMigrateCmd(opts),
	)
	return cmd
}

func (o *options) load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.serverURL != "" {
		cfg.Remote.BaseURL = o.serverURL
	}
	o.cfg = cfg
	return nil
}
