package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
)

func trainCmd() *cobra.Command {
	var (
		id        string
		modelType string
		inputs    []string
		targets   []string
		dataset   string
		artifacts []string
		outDir    string
		compress  bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a regression model for a plant on the hosted service",
		Long: `Train uploads a CSV training dataset and submits a regression training
job, polls until the job leaves the queued/running states and downloads the
solution artifacts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = fmt.Sprintf("regression-%s", uuid.NewString()[:8])
			}

			workflow := app.New(appConfig(), log)
			result, err := workflow.TrainModel(cmd.Context(), domain.RegressionJob{
				Id:          id,
				ModelType:   domain.ModelType(modelType),
				Inputs:      inputs,
				Targets:     targets,
				DatasetPath: dataset,
			}, artifacts)
			if err != nil {
				return err
			}

			printResult(cmd, result)
			return saveSolutions(outDir, compress, result)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "model identifier (generated when empty)")
	cmd.Flags().StringVar(&modelType, "model-type", string(domain.ModelLinear), "regression model type (linear, ridge, lasso, tree, forest, nn)")
	cmd.Flags().StringSliceVar(&inputs, "input", nil, "input variable name (repeatable)")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "target variable name (repeatable)")
	cmd.Flags().StringVar(&dataset, "dataset", "", "path to the training dataset CSV")
	cmd.Flags().StringSliceVar(&artifacts, "artifact", app.RegressionArtifacts, "solution artifact to download (repeatable)")
	cmd.Flags().StringVar(&outDir, "out", "", "directory to store downloaded artifacts")
	cmd.Flags().BoolVar(&compress, "gzip", false, "gzip-compress stored artifacts")
	cobra.CheckErr(cmd.MarkFlagRequired("dataset"))

	return cmd
}
