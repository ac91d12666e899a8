package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
	"github.com/IBM/regression-optimization-code-pattern/internal/persistence"
)

// fakeService emulates both job endpoints of the hosted API: delete, create,
// a status that needs one poll before turning terminal, and canned solution
// CSVs.
type fakeService struct {
	t          *testing.T
	statusSeen map[string]int
	submitted  map[string]map[string]string
	solutions  map[string]string
	finalState domain.JobStatus
}

func newFakeService(t *testing.T) *fakeService {
	return &fakeService{
		t:          t,
		statusSeen: map[string]int{},
		submitted:  map[string]map[string]string{},
		solutions:  map[string]string{},
		finalState: domain.StatusFinished,
	}
}

func (s *fakeService) handler(endpoint string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(fmt.Sprintf("DELETE /%s/{id}", endpoint), func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such job", http.StatusNotFound)
	})
	mux.HandleFunc(fmt.Sprintf("POST /%s", endpoint), func(w http.ResponseWriter, r *http.Request) {
		require.NoError(s.t, r.ParseMultipartForm(1<<20))
		fields := map[string]string{}
		for key := range r.MultipartForm.Value {
			fields[key] = r.FormValue(key)
		}
		s.submitted[endpoint] = fields
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"status":"queued","submitted_at":"2024-01-02T03:04:05Z"}`, fields["id"])
	})
	mux.HandleFunc(fmt.Sprintf("GET /%s/{id}", endpoint), func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		s.statusSeen[endpoint]++
		status := domain.StatusRunning
		if s.statusSeen[endpoint] > 1 {
			status = s.finalState
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"status":%q,"submitted_at":"2024-01-02T03:04:05Z"}`, id, status)
	})
	mux.HandleFunc(fmt.Sprintf("GET /%s/{id}/solution/{name}", endpoint), func(w http.ResponseWriter, r *http.Request) {
		body, ok := s.solutions[r.PathValue("name")]
		if !ok {
			http.Error(w, "no such solution", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, body)
	})

	return mux
}

func testWorkflow(t *testing.T, regression *fakeService, optimization *fakeService) (*Workflow, func()) {
	regServer := httptest.NewServer(regression.handler("regression-model"))
	optServer := httptest.NewServer(optimization.handler("single-process-optimization"))

	requester := &persistence.Requester{
		Client:  http.DefaultClient,
		Limiter: rate.NewLimiter(rate.Inf, 0),
		Log:     zerolog.Nop(),
	}
	headers := Config{ClientId: "id", ClientSecret: "secret"}.BaseHeaders()

	workflow := &Workflow{
		Regression: persistence.RegressionRepo{JobRepo: persistence.JobRepo{
			BaseUrl:     regServer.URL + "/regression-model",
			BaseHeaders: headers,
			Requester:   requester,
		}},
		Optimization: persistence.OptimizationRepo{JobRepo: persistence.JobRepo{
			BaseUrl:     optServer.URL + "/single-process-optimization",
			BaseHeaders: headers,
			Requester:   requester,
		}},
		Poller: Poller{Interval: time.Millisecond, MaxRetries: 20, Log: zerolog.Nop()},
		Log:    zerolog.Nop(),
	}

	return workflow, func() {
		regServer.Close()
		optServer.Close()
	}
}

func writeTempFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testRegressionJob(t *testing.T) domain.RegressionJob {
	return domain.RegressionJob{
		Id:          "boiler-1",
		ModelType:   domain.ModelLinear,
		Inputs:      []string{"fuel", "air"},
		Targets:     []string{"steam"},
		DatasetPath: writeTempFile(t, "plant.csv", "fuel,air,steam\n1,2,3\n4,5,6\n"),
	}
}

func testOptimizationJob(t *testing.T) domain.OptimizationJob {
	return domain.OptimizationJob{
		Id:               "optimize-boiler-1",
		Type:             domain.OptimizationMILP,
		Periods:          24,
		InputConfigPath:  writeTempFile(t, "input_config.csv", "variable,min,max,init,max_delta\nfuel,0,10,5,1\n"),
		OutputConfigPath: writeTempFile(t, "output_config.csv", "output,min,max,model\nsteam,1,9,boiler-1\n"),
	}
}

func TestTrainModel(t *testing.T) {
	regression := newFakeService(t)
	regression.solutions["predictions"] = "row,steam_predicted\n1,3.1\n2,5.9\n"
	regression.solutions["metrics"] = "metric,value\nr2,0.98\n"

	workflow, stop := testWorkflow(t, regression, newFakeService(t))
	defer stop()

	result, err := workflow.TrainModel(context.Background(), testRegressionJob(t), RegressionArtifacts)
	require.NoError(t, err)

	assert.Equal(t, "boiler-1", result.Ack.Id)
	assert.Equal(t, domain.StatusFinished, result.Ack.Status)
	assert.NotEmpty(t, result.RunId)

	assert.Equal(t, "boiler-1", regression.submitted["regression-model"]["id"])
	assert.Equal(t, "linear", regression.submitted["regression-model"]["model_type"])
	assert.Equal(t, "fuel,air", regression.submitted["regression-model"]["inputs"])
	assert.Equal(t, "steam", regression.submitted["regression-model"]["targets"])

	require.Contains(t, result.Solutions, "predictions")
	assert.Equal(t, 2, result.Solutions["predictions"].NumRows())
	require.Contains(t, result.Solutions, "metrics")
	assert.Equal(t, []string{"metric", "value"}, result.Solutions["metrics"].Columns)
}

func TestTrainModelFailedJobReturnsAckWithoutSolutions(t *testing.T) {
	regression := newFakeService(t)
	regression.finalState = domain.StatusFailed

	workflow, stop := testWorkflow(t, regression, newFakeService(t))
	defer stop()

	result, err := workflow.TrainModel(context.Background(), testRegressionJob(t), RegressionArtifacts)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, result.Ack.Status)
	assert.Empty(t, result.Solutions)
}

func TestRunLinksOptimizationToTrainedModel(t *testing.T) {
	regression := newFakeService(t)
	regression.solutions["predictions"] = "row,steam_predicted\n1,3.1\n"
	regression.solutions["metrics"] = "metric,value\nr2,0.98\n"
	optimization := newFakeService(t)
	optimization.solutions["set_points"] = "period,fuel\n1,4.2\n2,4.5\n"
	optimization.solutions["objective"] = "period,objective\n1,100.0\n2,101.5\n"

	workflow, stop := testWorkflow(t, regression, optimization)
	defer stop()

	trained, optimized, err := workflow.Run(context.Background(), testRegressionJob(t), testOptimizationJob(t))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFinished, trained.Ack.Status)
	assert.Equal(t, domain.StatusFinished, optimized.Ack.Status)

	fields := optimization.submitted["single-process-optimization"]
	assert.Equal(t, "optimize-boiler-1", fields["id"])
	// The optimization job references the regression job it was trained against.
	assert.Equal(t, "boiler-1", fields["model_id"])
	assert.Equal(t, "milp", fields["optimization_type"])
	assert.Equal(t, "24", fields["periods"])

	require.Contains(t, optimized.Solutions, "set_points")
	assert.Equal(t, 2, optimized.Solutions["set_points"].NumRows())
}

func TestRunStopsWhenRegressionFails(t *testing.T) {
	regression := newFakeService(t)
	regression.finalState = domain.StatusFailed
	optimization := newFakeService(t)

	workflow, stop := testWorkflow(t, regression, optimization)
	defer stop()

	_, optimized, err := workflow.Run(context.Background(), testRegressionJob(t), testOptimizationJob(t))
	require.Error(t, err)
	assert.Nil(t, optimized)
	assert.Empty(t, optimization.submitted)
}
