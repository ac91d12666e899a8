// Package persistence wraps the remote regression-and-optimization service
// behind per-endpoint repos. Nothing is computed locally; every operation is
// an HTTP call against the hosted API.
package persistence

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/avast/retry-go"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// StatusError is returned when the service answers with a code other than
// the one the caller expected. The body is kept verbatim for inspection.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status code %d: %s", e.Code, e.Body)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound
}

type reqConfig struct {
	Method      string
	Url         string
	Headers     []string
	Body        []byte
	ContentType string
}

// Requester issues the actual HTTP calls. A shared limiter paces requests so
// the polling loop and artifact downloads stay inside the API plan's rate
// allowance; transient transport failures are retried a fixed number of
// times. Non-2xx responses are never retried.
type Requester struct {
	Client  *http.Client
	Limiter *rate.Limiter
	Log     zerolog.Logger
}

func NewRequester(log zerolog.Logger) *Requester {
	return &Requester{
		Client:  http.DefaultClient,
		Limiter: rate.NewLimiter(rate.Limit(5), 1),
		Log:     log,
	}
}

func (r *Requester) do(ctx context.Context, config reqConfig, expectedResCode int) ([]byte, error) {
	if err := r.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var content []byte
	var statusCode int
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, config.Method, config.Url, bytes.NewBuffer(config.Body))
			if err != nil {
				return retry.Unrecoverable(err)
			}

			for _, proto := range config.Headers {
				headerKV := strings.SplitN(proto, ":", 2)
				req.Header.Add(headerKV[0], strings.TrimSpace(headerKV[1]))
			}
			if config.ContentType != "" {
				req.Header.Set("Content-Type", config.ContentType)
			}

			resp, err := r.Client.Do(req)
			if err != nil {
				r.Log.Debug().Err(err).Str("url", config.Url).Msg("transport failure, retrying")
				return err
			}

			content, err = read(resp.Body, r.Log)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			statusCode = resp.StatusCode
			return nil
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", config.Method, config.Url)
	}
	if statusCode != expectedResCode {
		return nil, errors.Wrapf(&StatusError{Code: statusCode, Body: content}, "%s %s", config.Method, config.Url)
	}

	return content, nil
}

func request[T any](ctx context.Context, r *Requester, config reqConfig, expectedResCode int) (*T, error) {
	content, err := r.do(ctx, config, expectedResCode)
	if err != nil {
		return nil, err
	}

	t, err := readJSON[T](content)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s %s response", config.Method, config.Url)
	}

	return t, nil
}

func read(reader io.ReadCloser, log zerolog.Logger) ([]byte, error) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("closing response body")
		}
	}()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return content, nil
}
