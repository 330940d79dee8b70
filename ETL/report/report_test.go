package report

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/gdp_report/ETL/extractors"
	"github.com/LilVoxy/gdp_report/ETL/load"
	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/transform"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

const scenarioPage = `[
	{"page":1,"pages":1,"per_page":3,"total":3},
	[
		{"date":"2021","value":"300"},
		{"date":"2020","value":"abc"},
		{"date":"2019","value":"100"}
	]
]`

func newTestLogger() *utils.ETLLogger {
	return utils.NewETLLoggerWithWriter("error", io.Discard)
}

// stepRecorder записывает порядок вызова шагов отчета
type stepRecorder struct {
	steps      []string
	fetchErr   error
	persistErr error
}

func (r *stepRecorder) Fetch(ctx context.Context, countryCode string, startYear, endYear int) ([]models.RawObservation, error) {
	r.steps = append(r.steps, "fetch")
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return []models.RawObservation{{Year: 2020, Value: models.NumberValue(1)}}, nil
}

func (r *stepRecorder) Cleanse(raw []models.RawObservation) (*models.ObservationTable, models.CleanseReport) {
	r.steps = append(r.steps, "cleanse")
	table := models.NewObservationTable()
	table.Add(2020, 1)
	return table, models.CleanseReport{Input: len(raw), Kept: 1}
}

func (r *stepRecorder) Persist(table *models.ObservationTable, countryCode string) (*load.LoadResult, error) {
	r.steps = append(r.steps, "persist")
	if r.persistErr != nil {
		return nil, r.persistErr
	}
	return &load.LoadResult{}, nil
}

func (r *stepRecorder) Visualize(ctx context.Context, table *models.ObservationTable, countryCode string) error {
	r.steps = append(r.steps, "visualize")
	return nil
}

func TestGenerateReport_StepOrder(t *testing.T) {
	r := &stepRecorder{}
	result, err := GenerateReport(context.Background(), r, "BR", 2019, 2021, func(ctx context.Context, res *Result) {
		r.steps = append(r.steps, "hook")
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"fetch", "cleanse", "persist", "hook", "visualize"}, r.steps)
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.Table.Len())
}

func TestGenerateReport_StopsOnError(t *testing.T) {
	fetchFailed := errors.New("fetch failed")
	r := &stepRecorder{fetchErr: fetchFailed}

	_, err := GenerateReport(context.Background(), r, "BR", 2019, 2021)
	assert.True(t, errors.Is(err, fetchFailed))
	assert.Equal(t, []string{"fetch"}, r.steps)

	persistFailed := errors.New("disk full")
	r = &stepRecorder{persistErr: persistFailed}

	_, err = GenerateReport(context.Background(), r, "BR", 2019, 2021)
	assert.True(t, errors.Is(err, persistFailed))
	assert.Equal(t, []string{"fetch", "cleanse", "persist"}, r.steps)
}

func TestIndicatorReport_Scenario(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, scenarioPage)
	}))
	defer server.Close()

	dir := t.TempDir()
	logger := newTestLogger()
	r := NewIndicatorReport(
		extractors.NewExtractor(server.URL, time.Second, models.GDPIndicator, logger),
		transform.NewTransformer(logger),
		load.NewLoadManager(dir, models.GDPIndicator, logger),
		nil,
	)

	result, err := GenerateReport(context.Background(), r, "BR", 2019, 2021)
	require.NoError(t, err)

	want := []models.Observation{{Year: 2019, Value: 100}, {Year: 2021, Value: 300}}
	if diff := cmp.Diff(want, result.Table.Rows()); diff != "" {
		t.Errorf("таблица отличается (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, result.Fetched)
	assert.Equal(t, models.CleanseReport{Input: 3, Kept: 2, Dropped: 1}, result.Cleanse)
	assert.Equal(t, 2, result.Load.Summary.Count)

	data, err := os.ReadFile(filepath.Join(dir, "BR_GDP_data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Year,GDP\n2019,100.0\n2021,300.0\n", string(data))

	stats, err := os.ReadFile(filepath.Join(dir, "BR_GDP_statistics.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(stats), ",GDP\ncount,2.0\nmean,200.0\n")
}
