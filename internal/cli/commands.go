package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jol/internal/db"
	"jol/internal/format"
	"jol/internal/logger"
	"jol/internal/mockbackend"
	"jol/internal/ui"
)

func (app *App) addListingsCommand(rootCmd *cobra.Command) {
	listingsCmd := &cobra.Command{
		Use:   "listings",
		Short: "Print the listing grid once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.load(false)
			if err != nil {
				return err
			}
			width, _ := cmd.Flags().GetInt("width")

			items, err := newClient(cfg).FetchListings(cmd.Context(), cfg.SortBy, cfg.SortOrder)
			if err != nil {
				return fmt.Errorf("failed to load listings: %w", err)
			}
			g := ui.RenderGrid(items, ui.GridOptions{
				Width:  width,
				Locale: format.LocaleFor(cfg.Locale),
				Now:    time.Now(),
			})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), g.Content)
			return err
		},
	}
	listingsCmd.Flags().Int("width", 3*ui.CardWidth, "Grid width in columns")
	rootCmd.AddCommand(listingsCmd)
}

func (app *App) addHealthCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.load(false)
			if err != nil {
				return err
			}
			status, err := newClient(cfg).Health(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", cfg.APIBase, status.Status, status.Service)
			return err
		},
	})
}

func (app *App) addMockServerCommand(rootCmd *cobra.Command) {
	mockCmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a local backend with sample listings",
		Long: `mock-server serves /health, /chat and /listings from a SQLite listing table
so the client can be tried without the real agent. The chat endpoint understands
simple requests such as "가구 매물 보여줘" or "3번 매물 끌어올려줘". With
mock.openai_api_key (or OPENAI_API_KEY) set, a chat completions model picks
the tools instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.load(false)
			if err != nil {
				return err
			}

			conn, err := db.OpenListingsDB(cfg.MockDB)
			if err != nil {
				return fmt.Errorf("failed to open listings database: %w", err)
			}
			defer func() {
				_ = conn.Close()
			}()
			if err := mockbackend.Seed(conn, time.Now()); err != nil {
				return fmt.Errorf("failed to seed listings: %w", err)
			}

			var opts []mockbackend.ServerOption
			if cfg.OpenAIKey != "" {
				logger.Info("Planning tool calls with chat completions", "model", cfg.OpenAIModel)
				opts = append(opts, mockbackend.WithPlanner(
					mockbackend.NewLLMPlanner(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)))
			}

			srv := &http.Server{
				Addr:              cfg.MockAddr,
				Handler:           mockbackend.NewServer(conn, opts...).Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Mock backend listening", "addr", cfg.MockAddr, "db", cfg.MockDB)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down mock backend")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	rootCmd.AddCommand(mockCmd)
}

func (app *App) addVersionCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "jol %s\n", Version)
		},
	})
}
