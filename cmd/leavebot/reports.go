package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/leavebot/internal/scheduler"
)

func (a *app) reportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List reports and when they are posted (UTC)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now().UTC()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REPORT\tSCHEDULE\tNEXT RUN")
			for _, t := range scheduler.Triggers {
				next, err := scheduler.NextRun(t.Spec, now)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.Report.Name, t.Spec, next.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}
