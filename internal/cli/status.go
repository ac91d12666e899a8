package cli

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
	"github.com/IBM/regression-optimization-code-pattern/internal/persistence"
)

func jobRepoFor(workflow *app.Workflow, kind string) (persistence.JobRepo, error) {
	switch kind {
	case "regression":
		return workflow.Regression.JobRepo, nil
	case "optimization":
		return workflow.Optimization.JobRepo, nil
	default:
		return persistence.JobRepo{}, errors.Newf("unknown job kind %q, want regression or optimization", kind)
	}
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status {regression|optimization} <job-id>",
		Short: "Fetch the current status of a job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow := app.New(appConfig(), log)
			repo, err := jobRepoFor(workflow, args[0])
			if err != nil {
				return err
			}

			ack, err := repo.Status(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(ack, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}

	return cmd
}
