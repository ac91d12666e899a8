package cli

import (
	"github.com/spf13/cobra"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
	"github.com/IBM/regression-optimization-code-pattern/internal/table"
)

func solutionCmd() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "solution {regression|optimization} <job-id> <name>",
		Short: "Download a named solution artifact of a completed job",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow := app.New(appConfig(), log)
			repo, err := jobRepoFor(workflow, args[0])
			if err != nil {
				return err
			}

			body, err := repo.Solution(cmd.Context(), args[1], args[2])
			if err != nil {
				return err
			}

			t, err := table.Parse(body)
			if err != nil {
				return err
			}

			if summary {
				cmd.Print(table.FormatSummaries(t.Summary()))
				return nil
			}

			out, err := t.MarshalCSV()
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "print per-column statistics instead of the raw CSV")

	return cmd
}
