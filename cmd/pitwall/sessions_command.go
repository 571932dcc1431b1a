package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pitwall/internal/config"
	"pitwall/internal/warehouse"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	var yearFlag int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored sessions for a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			if yearFlag == 0 {
				_ = cmd.Usage()
				return errors.New("--year <int> is required")
			}

			return ctx.withStore(func(cfg *config.Config, store *warehouse.Store) error {
				summaries, err := store.SessionSummaries(cmd.Context(), yearFlag)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(summaries) == 0 {
					fmt.Fprintf(out, "No sessions stored for %d\n", yearFlag)
					return nil
				}

				rows := make([][]string, 0, len(summaries))
				for _, s := range summaries {
					rows = append(rows, []string{
						s.MeetingName,
						s.SessionName,
						s.Type,
						orDash(s.StartDate),
						lapsCell(s.TotalLaps),
						ingestedCell(s),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Meeting", "Session", "Type", "Start", "Laps", "Ingested"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&yearFlag, "year", 0, "Season to list (e.g. 2024)")
	return cmd
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func lapsCell(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func ingestedCell(s warehouse.SessionSummary) string {
	if s.IngestedAt == nil {
		return "no"
	}
	return s.IngestedAt.Format("2006-01-02 15:04")
}
