package persistence

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
	"github.com/IBM/regression-optimization-code-pattern/internal/table"
)

// OptimizationRepo submits set-point optimization jobs against the
// single-process-optimization endpoint.
type OptimizationRepo struct {
	JobRepo
}

// Submit assembles the form fields and configuration attachments for an
// optimization job and creates it. The job references an already trained
// regression model by id; the input/output config CSVs carry the variable
// bounds and rate-of-change limits the solver works against.
func (r OptimizationRepo) Submit(ctx context.Context, job domain.OptimizationJob, inputConfig []byte, outputConfig []byte) (*domain.JobAck, error) {
	fields := map[string]string{
		"id":                job.Id,
		"optimization_type": string(job.Type),
		"model_id":          job.ModelId,
		"periods":           strconv.Itoa(job.Periods),
	}
	files := []FilePart{
		{Field: "input_config", Name: filepath.Base(job.InputConfigPath), Content: inputConfig},
		{Field: "output_config", Name: filepath.Base(job.OutputConfigPath), Content: outputConfig},
	}

	r.Requester.Log.Info().
		Str("id", job.Id).
		Str("model_id", job.ModelId).
		Str("optimization_type", string(job.Type)).
		Int("periods", job.Periods).
		Uint64("input_config_fingerprint", table.Fingerprint(inputConfig)).
		Uint64("output_config_fingerprint", table.Fingerprint(outputConfig)).
		Msg("submitting optimization job")

	return r.Create(ctx, fields, files)
}
