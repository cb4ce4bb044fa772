package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/leavebot/internal"
	"github.com/guilherme-santos/leavebot/internal/report"
)

func reportNames() []string {
	names := make([]string, 0, len(report.All))
	for _, r := range report.All {
		names = append(names, r.Name)
	}
	return names
}

func (a *app) runCmd() *cobra.Command {
	var (
		date   internal.Date
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:       "run <report>",
		Short:     "Build and post a single report now",
		Long:      "Build and post a single report now. Reports: " + strings.Join(reportNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: reportNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, ok := report.ByName(args[0])
			if !ok {
				return fmt.Errorf("unknown report %q, expected one of: %s", args[0], strings.Join(reportNames(), ", "))
			}
			if err := a.load(); err != nil {
				return err
			}
			r, err := a.runner(cmd.Context(), dryRun)
			if err != nil {
				return err
			}
			if date.IsZero() {
				return r.Run(cmd.Context(), rep)
			}
			return r.RunFor(cmd.Context(), rep, date)
		},
	}
	cmd.Flags().Var(&date, "date", "day the report is built for (YYYY-MM-DD), today in UTC by default")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the report instead of posting it to Slack")
	return cmd
}
