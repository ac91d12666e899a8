// Package cli implements the plantctl command line interface.
package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
)

const (
	defaultRegressionUrl   = "https://api.ibm.com/plantperformance/run/v1/regression-model"
	defaultOptimizationUrl = "https://api.ibm.com/plantperformance/run/v1/single-process-optimization"
)

var (
	cfgFile string
	log     zerolog.Logger
)

// RootCmd is the root cobra command. All sub-commands are registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plantctl",
		Short:         "plantctl drives the hosted plant regression and optimization service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cfgFile); err != nil {
				return err
			}
			log = newLogger(viper.GetBool("verbose"))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.plantctl.yaml)")
	cmd.PersistentFlags().String("regression-url", defaultRegressionUrl, "regression-model job endpoint")
	cmd.PersistentFlags().String("optimization-url", defaultOptimizationUrl, "single-process-optimization job endpoint")
	cmd.PersistentFlags().String("client-id", "", "API client identifier")
	cmd.PersistentFlags().String("client-secret", "", "API client secret")
	cmd.PersistentFlags().Duration("poll-interval", 5*time.Second, "sleep between job status polls")
	cmd.PersistentFlags().Int("max-retries", 60, "maximum number of status polls per job")
	cmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	for _, flag := range []string{"regression-url", "optimization-url", "client-id", "client-secret", "poll-interval", "max-retries", "verbose"} {
		if err := viper.BindPFlag(flag, cmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(
		trainCmd(),
		optimizeCmd(),
		statusCmd(),
		solutionCmd(),
		runCmd(),
		reportCmd(),
	)

	return cmd
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func appConfig() app.Config {
	return app.Config{
		RegressionUrl:   viper.GetString("regression-url"),
		OptimizationUrl: viper.GetString("optimization-url"),
		ClientId:        viper.GetString("client-id"),
		ClientSecret:    viper.GetString("client-secret"),
		PollInterval:    viper.GetDuration("poll-interval"),
		MaxRetries:      viper.GetInt("max-retries"),
	}
}
