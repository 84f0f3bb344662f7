package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/soulfoods/morsels/internal/chart"
	"github.com/soulfoods/morsels/internal/config"
	"github.com/soulfoods/morsels/internal/dashboard"
	"github.com/soulfoods/morsels/internal/dataset"
	"github.com/soulfoods/morsels/internal/ingest"
	"github.com/soulfoods/morsels/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sales dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Dashboard.Addr = addr
			}

			srv, err := newDashboard(cfg, logger)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), srv, cfg.Dashboard.Addr, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides dashboard.addr)")

	return cmd
}

// newDashboard loads the normalized sales file and builds the dashboard.
func newDashboard(cfg *config.Config, logger *slog.Logger) (*dashboard.Server, error) {
	ds, err := dataset.Load(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("loading sales data (run \"morsels process\" first): %w", err)
	}
	if ds.Len() == 0 {
		logging.WithComponent(logger, logging.ComponentDashboard).
			Warn("sales file has no records; the chart will be empty", logging.FieldFile, cfg.Output, logging.FieldError, ingest.ErrEmptySource)
	}

	ref, err := cfg.ReferenceDay()
	if err != nil {
		return nil, err
	}
	chartOpts := chart.DefaultOptions()
	chartOpts.ReferenceDate = ref

	return dashboard.New(ds, dashboard.Options{
		Heading: cfg.Dashboard.Title,
		Chart:   chartOpts,
		Logger:  logger,
	}), nil
}

// runServe serves until ctx is cancelled or the listener fails.
func runServe(ctx context.Context, srv *dashboard.Server, addr string, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down dashboard")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
