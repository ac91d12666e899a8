package app

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
	"github.com/IBM/regression-optimization-code-pattern/internal/persistence"
	"github.com/IBM/regression-optimization-code-pattern/internal/table"
)

// Default solution artifacts fetched after each job completes.
var (
	RegressionArtifacts   = []string{"predictions", "metrics"}
	OptimizationArtifacts = []string{"set_points", "objective"}
)

// Workflow runs the client side of a training or optimization job: delete
// any prior job with the same id, submit, poll to completion, download the
// solution CSVs.
type Workflow struct {
	Regression   persistence.RegressionRepo
	Optimization persistence.OptimizationRepo
	Poller       Poller
	Log          zerolog.Logger
}

// RunResult collects everything a single job run produced.
type RunResult struct {
	RunId     string
	Ack       *domain.JobAck
	Solutions map[string]*table.Table
}

// TrainModel submits a regression training job and waits for it to finish.
// Solution artifacts are fetched only when the job reports finished; a
// failed job is returned with its ack for the caller to inspect.
func (w *Workflow) TrainModel(ctx context.Context, job domain.RegressionJob, artifacts []string) (*RunResult, error) {
	result := &RunResult{RunId: uuid.NewString(), Solutions: map[string]*table.Table{}}
	log := w.Log.With().Str("run_id", result.RunId).Str("job", job.Id).Logger()

	dataset, err := os.ReadFile(job.DatasetPath)
	if err != nil {
		return result, errors.Wrapf(err, "reading dataset %s", job.DatasetPath)
	}

	// Idempotent cleanup so the id can be reused; failure here never halts
	// the submission sequence.
	if err := w.Regression.Delete(ctx, job.Id); err != nil {
		log.Warn().Err(err).Msg("prior job cleanup failed, submitting anyway")
	}

	ack, err := w.Regression.Submit(ctx, job, dataset)
	if err != nil {
		return result, err
	}
	result.Ack = ack
	log.Info().Str("status", string(ack.Status)).Str("submitted_at", ack.SubmittedAt).Msg("regression job accepted")

	final, err := w.Poller.Wait(ctx, w.Regression, job.Id)
	if final != nil {
		result.Ack = final
	}
	if err != nil {
		return result, err
	}

	if final.Status != domain.StatusFinished {
		log.Warn().Str("status", string(final.Status)).Str("detail", final.Detail).Msg("regression job did not finish")
		return result, nil
	}

	if err := w.fetchSolutions(ctx, w.Regression.JobRepo, job.Id, artifacts, result); err != nil {
		return result, err
	}
	return result, nil
}

// Optimize submits a set-point optimization job referencing a trained
// regression model and waits for it to finish.
func (w *Workflow) Optimize(ctx context.Context, job domain.OptimizationJob, artifacts []string) (*RunResult, error) {
	result := &RunResult{RunId: uuid.NewString(), Solutions: map[string]*table.Table{}}
	log := w.Log.With().Str("run_id", result.RunId).Str("job", job.Id).Logger()

	inputConfig, err := os.ReadFile(job.InputConfigPath)
	if err != nil {
		return result, errors.Wrapf(err, "reading input config %s", job.InputConfigPath)
	}
	outputConfig, err := os.ReadFile(job.OutputConfigPath)
	if err != nil {
		return result, errors.Wrapf(err, "reading output config %s", job.OutputConfigPath)
	}

	if err := w.Optimization.Delete(ctx, job.Id); err != nil {
		log.Warn().Err(err).Msg("prior job cleanup failed, submitting anyway")
	}

	ack, err := w.Optimization.Submit(ctx, job, inputConfig, outputConfig)
	if err != nil {
		return result, err
	}
	result.Ack = ack
	log.Info().Str("status", string(ack.Status)).Str("submitted_at", ack.SubmittedAt).Msg("optimization job accepted")

	final, err := w.Poller.Wait(ctx, w.Optimization, job.Id)
	if final != nil {
		result.Ack = final
	}
	if err != nil {
		return result, err
	}

	if final.Status != domain.StatusFinished {
		log.Warn().Str("status", string(final.Status)).Str("detail", final.Detail).Msg("optimization job did not finish")
		return result, nil
	}

	if err := w.fetchSolutions(ctx, w.Optimization.JobRepo, job.Id, artifacts, result); err != nil {
		return result, err
	}
	return result, nil
}

// Run executes the full demonstration: train the regression model, then
// optimize against it. The optimization job inherits the regression job's
// id as its model reference unless one was set explicitly.
func (w *Workflow) Run(ctx context.Context, regression domain.RegressionJob, optimization domain.OptimizationJob) (*RunResult, *RunResult, error) {
	trained, err := w.TrainModel(ctx, regression, RegressionArtifacts)
	if err != nil {
		return trained, nil, err
	}
	if trained.Ack == nil || trained.Ack.Status != domain.StatusFinished {
		return trained, nil, errors.Newf("regression job %s ended with status %q", regression.Id, ackStatus(trained.Ack))
	}

	if optimization.ModelId == "" {
		optimization.ModelId = regression.Id
	}

	optimized, err := w.Optimize(ctx, optimization, OptimizationArtifacts)
	return trained, optimized, err
}

func (w *Workflow) fetchSolutions(ctx context.Context, repo persistence.JobRepo, id string, artifacts []string, result *RunResult) error {
	for _, name := range artifacts {
		body, err := repo.Solution(ctx, id, name)
		if err != nil {
			return err
		}

		t, err := table.Parse(body)
		if err != nil {
			return errors.Wrapf(err, "parsing solution %q", name)
		}

		result.Solutions[name] = t
		w.Log.Info().Str("job", id).Str("solution", name).Int("rows", t.NumRows()).Int("columns", t.NumCols()).Msg("fetched solution artifact")
	}
	return nil
}

func ackStatus(ack *domain.JobAck) domain.JobStatus {
	if ack == nil {
		return ""
	}
	return ack.Status
}
