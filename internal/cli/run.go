package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
	"github.com/IBM/regression-optimization-code-pattern/internal/report"
)

func runCmd() *cobra.Command {
	var (
		modelId          string
		modelType        string
		inputs           []string
		targets          []string
		dataset          string
		optimizationId   string
		optimizationType string
		periods          int
		inputConfig      string
		outputConfig     string
		outDir           string
		compress         bool
		reportPath       string
		serveAddr        string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full demonstration: train a regression model, then optimize set points against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			suffix := uuid.NewString()[:8]
			if modelId == "" {
				modelId = fmt.Sprintf("regression-%s", suffix)
			}
			if optimizationId == "" {
				optimizationId = fmt.Sprintf("optimization-%s", suffix)
			}

			workflow := app.New(appConfig(), log)
			trained, optimized, err := workflow.Run(cmd.Context(),
				domain.RegressionJob{
					Id:          modelId,
					ModelType:   domain.ModelType(modelType),
					Inputs:      inputs,
					Targets:     targets,
					DatasetPath: dataset,
				},
				domain.OptimizationJob{
					Id:               optimizationId,
					Type:             domain.OptimizationType(optimizationType),
					Periods:          periods,
					InputConfigPath:  inputConfig,
					OutputConfigPath: outputConfig,
				})
			if err != nil {
				return err
			}

			printResult(cmd, trained)
			printResult(cmd, optimized)
			if err := saveSolutions(outDir, compress, trained, optimized); err != nil {
				return err
			}

			if reportPath == "" && serveAddr == "" {
				return nil
			}

			page := report.Page("Plant optimization run", map[string]*app.RunResult{
				"Regression training":    trained,
				"Set-point optimization": optimized,
			})
			if reportPath != "" {
				if err := report.Write(reportPath, page); err != nil {
					return err
				}
				log.Info().Str("path", reportPath).Msg("wrote run report")
			}
			if serveAddr != "" {
				return report.Serve(serveAddr, page, log)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelId, "model-id", "", "model identifier (generated when empty)")
	cmd.Flags().StringVar(&modelType, "model-type", string(domain.ModelLinear), "regression model type")
	cmd.Flags().StringSliceVar(&inputs, "input", nil, "input variable name (repeatable)")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "target variable name (repeatable)")
	cmd.Flags().StringVar(&dataset, "dataset", "", "path to the training dataset CSV")
	cmd.Flags().StringVar(&optimizationId, "optimization-id", "", "optimization identifier (generated when empty)")
	cmd.Flags().StringVar(&optimizationType, "type", string(domain.OptimizationMILP), "optimization type")
	cmd.Flags().IntVar(&periods, "periods", 1, "number of periods to optimize over")
	cmd.Flags().StringVar(&inputConfig, "input-config", "", "path to the input-regression-config CSV")
	cmd.Flags().StringVar(&outputConfig, "output-config", "", "path to the output-regression-config CSV")
	cmd.Flags().StringVar(&outDir, "out", "", "directory to store downloaded artifacts")
	cmd.Flags().BoolVar(&compress, "gzip", false, "gzip-compress stored artifacts")
	cmd.Flags().StringVar(&reportPath, "report", "", "write an HTML run report to this path")
	cmd.Flags().StringVar(&serveAddr, "serve", "", "serve the HTML run report on this address")
	cobra.CheckErr(cmd.MarkFlagRequired("dataset"))
	cobra.CheckErr(cmd.MarkFlagRequired("input-config"))
	cobra.CheckErr(cmd.MarkFlagRequired("output-config"))

	return cmd
}
