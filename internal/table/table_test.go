package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solutionCSV = "period,flow_rate,pressure,comment\n" +
	"1,10.5,2.1,ok\n" +
	"2,11.0,2.3,ok\n" +
	"3,9.5,1.9,relaxed\n"

func TestParsePreservesShape(t *testing.T) {
	tbl, err := Parse([]byte(solutionCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"period", "flow_rate", "pressure", "comment"}, tbl.Columns)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 4, tbl.NumCols())
	assert.Equal(t, []string{"1", "2", "3"}, mustColumn(t, tbl, "period"))
	assert.Equal(t, []string{"ok", "ok", "relaxed"}, mustColumn(t, tbl, "comment"))
}

func TestParseRejectsEmptyBody(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
}

func TestParseRejectsRaggedRows(t *testing.T) {
	_, err := Parse([]byte("a,b\n1,2\n3\n"))
	assert.Error(t, err)
}

func TestFloats(t *testing.T) {
	tbl, err := Parse([]byte(solutionCSV))
	require.NoError(t, err)

	values, err := tbl.Floats("flow_rate")
	require.NoError(t, err)
	assert.Equal(t, []float64{10.5, 11.0, 9.5}, values)

	_, err = tbl.Floats("comment")
	assert.Error(t, err)

	_, err = tbl.Floats("no_such_column")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input_regression_config.csv")
	require.NoError(t, os.WriteFile(path, []byte(solutionCSV), 0o644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"period", "flow_rate", "pressure", "comment"}, tbl.Columns)
	assert.Equal(t, 3, tbl.NumRows())

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestMarshalCSVRoundTrip(t *testing.T) {
	tbl, err := Parse([]byte(solutionCSV))
	require.NoError(t, err)

	content, err := tbl.MarshalCSV()
	require.NoError(t, err)

	again, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, tbl, again)
}

func TestSummarySkipsNonNumericColumns(t *testing.T) {
	tbl, err := Parse([]byte(solutionCSV))
	require.NoError(t, err)

	summaries := tbl.Summary()
	require.Len(t, summaries, 3)

	assert.Equal(t, "flow_rate", summaries[1].Column)
	assert.Equal(t, 3, summaries[1].Count)
	assert.InDelta(t, 10.333333, summaries[1].Mean, 1e-6)
	assert.InDelta(t, 9.5, summaries[1].Min, 1e-9)
	assert.InDelta(t, 11.0, summaries[1].Max, 1e-9)
}

func TestGzipCacheRoundTrip(t *testing.T) {
	tbl, err := Parse([]byte(solutionCSV))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "set_points.csv.gz")
	require.NoError(t, WriteGzip(path, tbl))

	again, err := ReadGzip(path)
	require.NoError(t, err)
	assert.Equal(t, tbl, again)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte(solutionCSV))
	b := Fingerprint([]byte(solutionCSV))
	c := Fingerprint([]byte(solutionCSV + "4,8.0,1.5,ok\n"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func mustColumn(t *testing.T, tbl *Table, name string) []string {
	t.Helper()
	values, err := tbl.Column(name)
	require.NoError(t, err)
	return values
}
