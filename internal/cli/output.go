package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
	"github.com/IBM/regression-optimization-code-pattern/internal/table"
)

func printResult(cmd *cobra.Command, result *app.RunResult) {
	if result == nil || result.Ack == nil {
		return
	}

	cmd.Printf("job %s: %s", result.Ack.Id, result.Ack.Status)
	if result.Ack.Detail != "" {
		cmd.Printf(" (%s)", result.Ack.Detail)
	}
	cmd.Println()

	names := make([]string, 0, len(result.Solutions))
	for name := range result.Solutions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := result.Solutions[name]
		cmd.Printf("\nsolution %s (%d rows x %d columns)\n", name, t.NumRows(), t.NumCols())
		cmd.Print(table.FormatSummaries(t.Summary()))
	}
}

// saveSolutions stores every downloaded artifact under dir, one file per
// artifact named <job-id>_<artifact>.csv, gzip-compressed when requested.
func saveSolutions(dir string, compress bool, results ...*app.RunResult) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, result := range results {
		if result == nil || result.Ack == nil {
			continue
		}
		for name, t := range result.Solutions {
			path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", result.Ack.Id, name))
			if compress {
				if err := table.WriteGzip(path+".gz", t); err != nil {
					return err
				}
				continue
			}

			content, err := t.MarshalCSV()
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, content, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}
