package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reelhouse/movie-catalog/internal/app"
	"github.com/reelhouse/movie-catalog/internal/core/service"
	"github.com/reelhouse/movie-catalog/pkg/logger"
)

func newCheckBackrefsCmd() *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "check-backrefs",
		Short: "Report director, actor and genre movie lists that disagree with the movies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				auditor := service.NewBackReferenceAuditor(a.CatalogStore(), logger.Component("backrefs"))
				report, err := auditor.Audit(ctx, repair)
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), report, repair)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "add missing ids and remove stale ones")
	return cmd
}

func printReport(out io.Writer, report *service.BackReferenceReport, repair bool) {
	for _, d := range report.Drift {
		fmt.Fprintf(out, "%-9s %-10s %s movie=%s\n", d.Kind, d.Collection, d.RecordID, d.MovieID)
	}
	fmt.Fprintf(out, "\nmovies scanned: %d  drift: %d", report.MoviesScanned, len(report.Drift))
	if repair {
		fmt.Fprintf(out, "  repaired: %d", report.Repaired)
	}
	fmt.Fprintln(out)
}
