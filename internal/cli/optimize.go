package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
)

func optimizeCmd() *cobra.Command {
	var (
		id               string
		optimizationType string
		modelId          string
		periods          int
		inputConfig      string
		outputConfig     string
		artifacts        []string
		outDir           string
		compress         bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Compute recommended set points against a trained regression model",
		Long: `Optimize submits a single-process-optimization job referencing a trained
regression model, polls until the job leaves the queued/running states and
downloads the solution artifacts (recommended set points per period).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = fmt.Sprintf("optimization-%s", uuid.NewString()[:8])
			}

			workflow := app.New(appConfig(), log)
			result, err := workflow.Optimize(cmd.Context(), domain.OptimizationJob{
				Id:               id,
				Type:             domain.OptimizationType(optimizationType),
				ModelId:          modelId,
				Periods:          periods,
				InputConfigPath:  inputConfig,
				OutputConfigPath: outputConfig,
			}, artifacts)
			if err != nil {
				return err
			}

			printResult(cmd, result)
			return saveSolutions(outDir, compress, result)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "optimization identifier (generated when empty)")
	cmd.Flags().StringVar(&optimizationType, "type", string(domain.OptimizationMILP), "optimization type (milp, auglag)")
	cmd.Flags().StringVar(&modelId, "model", "", "identifier of the trained regression model")
	cmd.Flags().IntVar(&periods, "periods", 1, "number of periods to optimize over")
	cmd.Flags().StringVar(&inputConfig, "input-config", "", "path to the input-regression-config CSV")
	cmd.Flags().StringVar(&outputConfig, "output-config", "", "path to the output-regression-config CSV")
	cmd.Flags().StringSliceVar(&artifacts, "artifact", app.OptimizationArtifacts, "solution artifact to download (repeatable)")
	cmd.Flags().StringVar(&outDir, "out", "", "directory to store downloaded artifacts")
	cmd.Flags().BoolVar(&compress, "gzip", false, "gzip-compress stored artifacts")
	cobra.CheckErr(cmd.MarkFlagRequired("model"))
	cobra.CheckErr(cmd.MarkFlagRequired("input-config"))
	cobra.CheckErr(cmd.MarkFlagRequired("output-config"))

	return cmd
}
