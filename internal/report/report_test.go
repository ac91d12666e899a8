package report

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
	"github.com/IBM/regression-optimization-code-pattern/internal/table"
)

func testRuns(t *testing.T) map[string]*app.RunResult {
	t.Helper()
	setPoints, err := table.Parse([]byte("period,fuel\n1,4.2\n2,4.5\n"))
	require.NoError(t, err)

	return map[string]*app.RunResult{
		"Set-point optimization": {
			RunId: "run-1",
			Ack: &domain.JobAck{
				Id:          "optimize-boiler-1",
				Status:      domain.StatusFinished,
				SubmittedAt: "2024-01-02T03:04:05Z",
			},
			Solutions: map[string]*table.Table{"set_points": setPoints},
		},
	}
}

func TestPageRendersJobsAndTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page("Plant optimization run", testRuns(t)).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "Plant optimization run")
	assert.Contains(t, html, "optimize-boiler-1")
	assert.Contains(t, html, "finished")
	assert.Contains(t, html, "<th>fuel</th>")
	assert.Contains(t, html, "<td>4.5</td>")
}

func TestPageEscapesCellContent(t *testing.T) {
	tbl, err := table.Parse([]byte("note\n<script>alert(1)</script>\n"))
	require.NoError(t, err)

	runs := map[string]*app.RunResult{
		"Regression training": {
			Ack:       &domain.JobAck{Id: "boiler-1", Status: domain.StatusFinished},
			Solutions: map[string]*table.Table{"metrics": tbl},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Page("run", runs).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestHandlerServesHTML(t *testing.T) {
	handler := Handler(Page("Plant optimization run", testRuns(t)))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/html", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Body.String(), "optimize-boiler-1")
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, Write(path, Page("run", testRuns(t))))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "set_points")
}
