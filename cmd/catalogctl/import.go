package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/reelhouse/movie-catalog/internal/api/metrics"
	"github.com/reelhouse/movie-catalog/internal/app"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
	"github.com/reelhouse/movie-catalog/internal/core/service"
	"github.com/reelhouse/movie-catalog/internal/infrastructure/queue"
	"github.com/reelhouse/movie-catalog/pkg/logger"
)

type importOptions struct {
	ids     []int
	file    string
	workers int
	rps     float64
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import movies from TMDB by their TMDB id",
		Long: "Import movies from TMDB keyed by TMDB id. Directors, actors and genres are " +
			"reused when they were imported before, and movies already in the catalog are skipped.",
		Example: "  catalogctl import --id 329865 --id 27205\n  catalogctl import --file ids.txt --workers 8 --rps 10",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids := opts.ids
			if opts.file != "" {
				fromFile, err := readIDFile(opts.file)
				if err != nil {
					return err
				}
				ids = append(ids, fromFile...)
			}
			if len(ids) == 0 {
				return fmt.Errorf("no ids given: use --id or --file")
			}
			if opts.rps <= 0 {
				return fmt.Errorf("--rps must be positive")
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return runImport(ctx, cmd.OutOrStdout(), a, ids, opts)
			})
		},
	}

	cmd.Flags().IntSliceVar(&opts.ids, "id", nil, "TMDB movie id (repeatable, comma-separated allowed)")
	cmd.Flags().StringVar(&opts.file, "file", "", "file with one TMDB id per line; # starts a comment")
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "number of concurrent import workers")
	cmd.Flags().Float64Var(&opts.rps, "rps", 4, "maximum TMDB requests per second")
	return cmd
}

func runImport(ctx context.Context, out io.Writer, a *app.App, ids []int, opts importOptions) error {
	log := logger.Component("import")
	limiter := rate.NewLimiter(rate.Limit(opts.rps), 1)
	importer := service.NewImportService(a.CatalogStore(), a.Catalog, a.Metadata, limiter, metrics.Recorder{}, log)

	results := queue.NewDispatcher(opts.workers, importer, log).ImportAll(ctx, ids)

	s := summarize(results)
	for _, r := range results {
		switch r.Outcome {
		case ports.ImportFailed:
			fmt.Fprintf(out, "failed    %-8d %v\n", r.TMDBID, r.Err)
		default:
			fmt.Fprintf(out, "%-9s %-8d %s (%s)\n", r.Outcome, r.TMDBID, r.Title, r.MovieID)
		}
	}
	fmt.Fprintf(out, "\nimported: %d  skipped: %d  failed: %d\n", s.imported, s.skipped, s.failed)
	log.Info().Int("imported", s.imported).Int("skipped", s.skipped).Int("failed", s.failed).Msg("import finished")

	if s.failed > 0 {
		return fmt.Errorf("%d of %d imports failed", s.failed, len(results))
	}
	return nil
}

type importSummary struct {
	imported, skipped, failed int
}

func summarize(results []ports.ImportResult) importSummary {
	var s importSummary
	for _, r := range results {
		switch r.Outcome {
		case ports.ImportCreated:
			s.imported++
		case ports.ImportSkipped:
			s.skipped++
		default:
			s.failed++
		}
	}
	return s
}

func readIDFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open id file: %w", err)
	}
	defer f.Close()
	return parseIDs(f)
}

// parseIDs reads one positive id per line. Blank lines and text after # are
// ignored.
func parseIDs(r io.Reader) ([]int, error) {
	var ids []int
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line, _, _ := strings.Cut(sc.Text(), "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, err := strconv.Atoi(line)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("line %d: invalid TMDB id %q", n, line)
		}
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ids: %w", err)
	}
	return ids, nil
}
