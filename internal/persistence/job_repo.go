package persistence

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
)

// JobRepo talks to one job endpoint of the hosted service. Both the
// regression-model and the single-process-optimization endpoints expose the
// same resource shape: POST to create, GET <id> for status, DELETE <id> for
// cleanup and GET <id>/solution/<name> for solution CSVs.
type JobRepo struct {
	BaseUrl     string
	BaseHeaders []string
	Requester   *Requester
}

// Delete removes a prior job with the same identifier so the id can be
// reused. Any non-200 answer is tolerated and only logged; a missing job is
// the normal case on first submission.
func (r JobRepo) Delete(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/%s", r.BaseUrl, id)

	_, err := r.Requester.do(ctx, reqConfig{Method: "DELETE", Url: url, Headers: r.BaseHeaders}, 200)
	if err != nil {
		if IsNotFound(err) {
			r.Requester.Log.Debug().Str("id", id).Msg("delete skipped, job did not previously exist")
			return nil
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			r.Requester.Log.Warn().Str("id", id).Int("code", statusErr.Code).Msg("delete ignored, unexpected response")
			return nil
		}
		return err
	}

	r.Requester.Log.Debug().Str("id", id).Msg("deleted prior job")
	return nil
}

// Create submits a new job as multipart form fields plus file attachments
// and returns the service's acknowledgment, normally a queued status with a
// timestamp. Field values are passed through unvalidated; the service owns
// rejection of malformed input.
func (r JobRepo) Create(ctx context.Context, fields map[string]string, files []FilePart) (*domain.JobAck, error) {
	body, contentType, err := encodeMultipart(fields, files)
	if err != nil {
		return nil, err
	}

	return request[domain.JobAck](ctx, r.Requester, reqConfig{
		Method:      "POST",
		Url:         r.BaseUrl,
		Headers:     r.BaseHeaders,
		Body:        body,
		ContentType: contentType,
	}, 200)
}

// Status fetches the job's current status/metadata.
func (r JobRepo) Status(ctx context.Context, id string) (*domain.JobAck, error) {
	url := fmt.Sprintf("%s/%s", r.BaseUrl, id)

	return request[domain.JobAck](ctx, r.Requester, reqConfig{Method: "GET", Url: url, Headers: r.BaseHeaders}, 200)
}

// Solution fetches a named solution artifact as raw CSV text.
func (r JobRepo) Solution(ctx context.Context, id string, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/solution/%s", r.BaseUrl, id, name)

	return r.Requester.do(ctx, reqConfig{Method: "GET", Url: url, Headers: r.BaseHeaders}, 200)
}
