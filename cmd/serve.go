package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/theirongolddev/hormiga/internal/cli"
	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/server"
	"github.com/theirongolddev/hormiga/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr         string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve one wizard session over an HTTP JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	scfg := server.Config{
		Addr:           addr,
		EventsBuffer:   flagServeEventsBuffer,
		InitialExpense: source.DefaultLabel,
		Palette:        model.DefaultPalette,
		Money:          cli.MoneyFromConfig(cfg.Currency),
	}

	history, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
		scfg.Recorder = history
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.New(scfg).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("hormiga server stopped")
	return nil
}
