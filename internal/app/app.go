// Package app orchestrates the two-job client workflow against the hosted
// service: train a regression model for a plant, then optimize set points
// against it. Everything runs sequentially, one HTTP call at a time.
package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/IBM/regression-optimization-code-pattern/internal/persistence"
)

// Config carries the endpoints, credentials and polling policy. Credentials
// are a static client-id/client-secret pair; there is no token refresh.
type Config struct {
	RegressionUrl   string
	OptimizationUrl string
	ClientId        string
	ClientSecret    string
	PollInterval    time.Duration
	MaxRetries      int
}

// BaseHeaders builds the headers required on every call to the service.
func (c Config) BaseHeaders() []string {
	return []string{
		fmt.Sprintf("X-IBM-Client-Id: %s", c.ClientId),
		fmt.Sprintf("X-IBM-Client-Secret: %s", c.ClientSecret),
		"Accept: application/json",
	}
}

// New wires the repos and poller for the two fixed endpoints.
func New(config Config, log zerolog.Logger) *Workflow {
	requester := persistence.NewRequester(log)
	headers := config.BaseHeaders()

	return &Workflow{
		Regression: persistence.RegressionRepo{JobRepo: persistence.JobRepo{
			BaseUrl:     config.RegressionUrl,
			BaseHeaders: headers,
			Requester:   requester,
		}},
		Optimization: persistence.OptimizationRepo{JobRepo: persistence.JobRepo{
			BaseUrl:     config.OptimizationUrl,
			BaseHeaders: headers,
			Requester:   requester,
		}},
		Poller: Poller{Interval: config.PollInterval, MaxRetries: config.MaxRetries, Log: log},
		Log:    log,
	}
}
