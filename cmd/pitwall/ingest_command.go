package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pitwall/internal/archive"
	"pitwall/internal/config"
	"pitwall/internal/ingest"
	"pitwall/internal/warehouse"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var (
		yearFlag  int
		allFlag   bool
		forceFlag bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest one season or every known season into the warehouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			years, err := selectYears(cfg, yearFlag, allFlag)
			if err != nil {
				_ = cmd.Usage()
				return err
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return ctx.withStore(func(cfg *config.Config, store *warehouse.Store) error {
				client, err := archive.NewFromConfig(cfg.Archive, logger)
				if err != nil {
					return err
				}

				summary, err := ingest.New(cfg, logger, store, client).Run(runCtx, years, forceFlag)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d/%d sessions\n", summary.Ingested, summary.Total)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&yearFlag, "year", 0, "Season to ingest (e.g. 2024)")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Ingest every season in the configured range")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Re-ingest sessions already marked complete")
	return cmd
}

// selectYears expands the year flags into the season list for the run.
func selectYears(cfg *config.Config, year int, all bool) ([]int, error) {
	switch {
	case all && year != 0:
		return nil, errors.New("--year and --all are mutually exclusive")
	case all:
		years := make([]int, 0, cfg.Seasons.Last-cfg.Seasons.First+1)
		for y := cfg.Seasons.First; y <= cfg.Seasons.Last; y++ {
			years = append(years, y)
		}
		return years, nil
	case year != 0:
		if year < 1950 {
			return nil, fmt.Errorf("invalid year %d", year)
		}
		return []int{year}, nil
	default:
		return nil, errors.New("either --year <int> or --all is required")
	}
}
