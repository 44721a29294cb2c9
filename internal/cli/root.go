// Package cli provides command-line interface setup for jol.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jol/internal/api"
	"jol/internal/config"
	"jol/internal/logger"
	"jol/internal/ui"
)

// Version is overridden at build time with -ldflags "-X jol/internal/cli.Version=...".
var Version = "dev"

// App represents the jol CLI application
type App struct {
	v          *viper.Viper
	configFile string
}

func NewApp() *App {
	return &App{v: config.New()}
}

// CreateRootCommand creates and configures the root command
func (app *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jol",
		Short: "Chat with your marketplace listings from the terminal",
		Long: `jol connects a conversation with the listing agent to a live grid of your
marketplace listings. Listings the agent changes are refreshed and highlighted.`,
		SilenceUsage: true,
		RunE:         app.runTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configFile, "config", "", "Config file (yaml, json or toml)")
	flags.String("api-base", "", "Backend base URL")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Log file path")
	flags.String("locale", "", "Display locale (ko, en)")

	_ = app.v.BindPFlag(config.KeyAPIBase, flags.Lookup("api-base"))
	_ = app.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = app.v.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))
	_ = app.v.BindPFlag(config.KeyLocale, flags.Lookup("locale"))

	app.addListingsCommand(rootCmd)
	app.addHealthCommand(rootCmd)
	app.addMockServerCommand(rootCmd)
	app.addVersionCommand(rootCmd)

	return rootCmd
}

// load resolves configuration. The TUI owns the terminal, so it always logs
// to a file; other commands log to stderr unless a file is configured.
func (app *App) load(tui bool) (*config.Config, error) {
	cfg, err := config.Load(app.v, app.configFile)
	if err != nil {
		return nil, err
	}
	logFile := cfg.LogFile
	if tui && logFile == "" {
		logFile = logger.DefaultFile()
	}
	if err := logger.Configure(cfg.LogLevel, logFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *api.Client {
	var opts []api.Option
	if cfg.RequestTimeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.RequestTimeout))
	}
	return api.NewClient(cfg.APIBase, opts...)
}

func (app *App) runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := app.load(true)
	if err != nil {
		return err
	}

	p := ui.NewProgram(cfg, newClient(cfg))
	if _, err := p.Run(); err != nil {
		logger.Error("Program exited with error", "error", err)
		return err
	}
	return nil
}
