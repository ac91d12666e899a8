package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
	"github.com/IBM/regression-optimization-code-pattern/internal/report"
	"github.com/IBM/regression-optimization-code-pattern/internal/table"
)

func reportCmd() *cobra.Command {
	var (
		htmlPath  string
		serveAddr string
	)

	cmd := &cobra.Command{
		Use:   "report <artifact-dir>",
		Short: "Render previously downloaded solution artifacts as an HTML report",
		Long: `Report rebuilds the HTML run report from artifacts stored with --out,
without contacting the service. Plain and gzip-compressed artifacts are both
picked up and grouped by the job id prefix of their <job-id>_<artifact>.csv
file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := loadSavedRuns(args[0])
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				return errors.Newf("no solution artifacts found under %s", args[0])
			}

			page := report.Page("Plant optimization run", runs)
			if serveAddr != "" {
				return report.Serve(serveAddr, page, log)
			}

			if err := report.Write(htmlPath, page); err != nil {
				return err
			}
			log.Info().Str("path", htmlPath).Msg("wrote run report")
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "report.html", "path of the rendered HTML report")
	cmd.Flags().StringVar(&serveAddr, "serve", "", "serve the report on this address instead of writing it")

	return cmd
}

// loadSavedRuns reads every artifact saveSolutions stored under dir and
// groups the tables per job id. Acks are not persisted locally, so the
// rebuilt results carry solutions only.
func loadSavedRuns(dir string) (map[string]*app.RunResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading artifact directory %s", dir)
	}

	runs := map[string]*app.RunResult{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		var (
			t    *table.Table
			base string
		)
		switch {
		case strings.HasSuffix(name, ".csv.gz"):
			t, err = table.ReadGzip(filepath.Join(dir, name))
			base = strings.TrimSuffix(name, ".csv.gz")
		case strings.HasSuffix(name, ".csv"):
			t, err = table.Load(filepath.Join(dir, name))
			base = strings.TrimSuffix(name, ".csv")
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		jobId, artifact, found := strings.Cut(base, "_")
		if !found {
			jobId, artifact = base, "solution"
		}

		run := runs[jobId]
		if run == nil {
			run = &app.RunResult{Solutions: map[string]*table.Table{}}
			runs[jobId] = run
		}
		run.Solutions[artifact] = t
	}

	return runs, nil
}
