package persistence

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
	"github.com/IBM/regression-optimization-code-pattern/internal/table"
)

// RegressionRepo submits model-training jobs against the regression-model
// endpoint.
type RegressionRepo struct {
	JobRepo
}

// Submit assembles the form fields and dataset attachment for a regression
// training job and creates it. The dataset fingerprint is logged so dataset
// drift between reruns of the same model id is visible.
func (r RegressionRepo) Submit(ctx context.Context, job domain.RegressionJob, dataset []byte) (*domain.JobAck, error) {
	fields := map[string]string{
		"id":         job.Id,
		"model_type": string(job.ModelType),
		"inputs":     strings.Join(job.Inputs, ","),
		"targets":    strings.Join(job.Targets, ","),
	}
	files := []FilePart{
		{Field: "dataset", Name: filepath.Base(job.DatasetPath), Content: dataset},
	}

	r.Requester.Log.Info().
		Str("id", job.Id).
		Str("model_type", string(job.ModelType)).
		Uint64("dataset_fingerprint", table.Fingerprint(dataset)).
		Msg("submitting regression job")

	return r.Create(ctx, fields, files)
}
