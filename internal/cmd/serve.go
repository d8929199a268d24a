package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/stepthrough/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [lesson-file]",
	Short: "Serve the lesson over a JSON HTTP API",
	Long: `Serve the lesson to many learners at once. Each session created with
POST /api/sessions has its own cursor; advance, retreat and reset it with
POST /api/sessions/{id}/{action}.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logger.Close()

	content, err := loadContent(cmd, cfg, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(content, server.Options{
		Addr:        cfg.Server.Addr,
		MaxSessions: cfg.Server.MaxSessions,
		Logger:      logger.With("title", content.Title),
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %q on %s\n", content.Title, cfg.Server.Addr)
	return srv.ListenAndServe(ctx)
}
