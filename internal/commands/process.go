package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/soulfoods/morsels/internal/config"
	"github.com/soulfoods/morsels/internal/dataset"
	"github.com/soulfoods/morsels/internal/ingest"
	"github.com/soulfoods/morsels/internal/logging"
	"github.com/soulfoods/morsels/internal/runlog"
)

func newProcessCommand(opts *globalOptions) *cobra.Command {
	var dataDir, output string

	cmd := &cobra.Command{
		Use:   "process [files...]",
		Short: "Normalize transaction CSVs into the sales file",
		Long: "Reads every CSV in the data directory (or the files given as arguments), keeps the\n" +
			"configured product, computes sales = quantity x price and writes sales,date,region.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, root, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			return runProcess(cmd.OutOrStdout(), logger, cfg, root, args)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "directory of transaction CSVs (overrides data_dir)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "normalized sales file to write (overrides output)")

	return cmd
}

func runProcess(out io.Writer, logger *slog.Logger, cfg *config.Config, root string, files []string) error {
	log := logging.WithComponent(logger, logging.ComponentIngest)

	sources, err := collectSources(cfg, files)
	if err != nil {
		return err
	}

	entry := runlog.Entry{
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Product:   cfg.Product,
		Sources:   len(sources),
		Output:    cfg.Output,
	}

	records, err := ingest.Normalize(sources, cfg.Product)
	if err != nil {
		entry.Status = runlog.StatusFailed
		entry.Details = err.Error()
		appendRunLog(log, root, entry)
		return fmt.Errorf("processing transactions: %w", err)
	}

	entry.Status = runlog.StatusOK
	if len(records) == 0 {
		entry.Status = runlog.StatusEmpty
		entry.Details = ingest.ErrEmptySource.Error()
		log.Warn("writing empty sales file", "product", cfg.Product, logging.FieldError, ingest.ErrEmptySource)
	}

	if err := dataset.Save(cfg.Output, records); err != nil {
		entry.Status = runlog.StatusFailed
		entry.Details = err.Error()
		appendRunLog(log, root, entry)
		return err
	}

	ds := dataset.New(records)
	entry.Records = ds.Len()
	entry.Total = ds.Total().StringFixed(2)
	appendRunLog(log, root, entry)

	log.Info("normalized transactions", "sources", len(sources), logging.FieldRows, ds.Len(), "regions", len(ds.Regions()))
	fmt.Fprintf(out, "Wrote %d %s records from %d file(s) to %s (total sales %s)\n",
		ds.Len(), cfg.Product, len(sources), cfg.Output, entry.Total)
	return nil
}

// collectSources uses explicit files when given, otherwise every CSV in the
// data directory except the output file itself.
func collectSources(cfg *config.Config, files []string) ([]ingest.Source, error) {
	if len(files) > 0 {
		sources := make([]ingest.Source, len(files))
		for i, f := range files {
			sources[i] = ingest.FileSource(f)
		}
		return sources, nil
	}

	scanned, err := ingest.Scan(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	outAbs, _ := filepath.Abs(cfg.Output)
	var keep []ingest.FileInfo
	for _, f := range scanned {
		if abs, _ := filepath.Abs(f.Path); abs == outAbs {
			continue
		}
		keep = append(keep, f)
	}
	if len(keep) == 0 {
		return nil, errors.New("no transaction CSV files found in " + cfg.DataDir)
	}
	return ingest.FileSources(keep), nil
}

func appendRunLog(log *slog.Logger, root string, entry runlog.Entry) {
	if err := runlog.Append(root, []runlog.Entry{entry}); err != nil {
		log.Warn("could not record run", logging.FieldError, err)
	}
}
