package load

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

func newTestLogger() *utils.ETLLogger {
	return utils.NewETLLoggerWithWriter("error", io.Discard)
}

func scenarioTable() *models.ObservationTable {
	table := models.NewObservationTable()
	table.Add(2019, 100)
	table.Add(2021, 300)
	return table
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "100.0", FormatFloat(100))
	assert.Equal(t, "0.0", FormatFloat(0))
	assert.Equal(t, "141.4213562373095", FormatFloat(math.Sqrt(20000)))
	assert.Equal(t, "21060473613000.0", FormatFloat(2.1060473613e13))
	assert.Equal(t, "-2.5", FormatFloat(-2.5))
	assert.Equal(t, "10000000000000000.0", FormatFloat(1e16))
	assert.Equal(t, "0.00001", FormatFloat(1e-5))
	assert.Equal(t, "", FormatFloat(math.NaN()))
}

func TestLoadManager_Load_Scenario(t *testing.T) {
	dir := t.TempDir()
	manager := NewLoadManager(dir, models.GDPIndicator, newTestLogger())

	result, err := manager.Load(scenarioTable(), "BR")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "BR_GDP_data.csv"), result.DataPath)
	assert.Equal(t, "Year,GDP\n2019,100.0\n2021,300.0\n", readFile(t, result.DataPath))

	assert.Equal(t, filepath.Join(dir, "BR_GDP_statistics.csv"), result.StatisticsPath)
	assert.Equal(t,
		",GDP\n"+
			"count,2.0\n"+
			"mean,200.0\n"+
			"std,141.4213562373095\n"+
			"min,100.0\n"+
			"25%,150.0\n"+
			"50%,200.0\n"+
			"75%,250.0\n"+
			"max,300.0\n",
		readFile(t, result.StatisticsPath))
	assert.Equal(t, 2, result.Summary.Count)
}

func TestLoadManager_Load_Empty(t *testing.T) {
	dir := t.TempDir()
	manager := NewLoadManager(dir, models.GDPIndicator, newTestLogger())

	result, err := manager.Load(models.NewObservationTable(), "BR")
	require.NoError(t, err)

	assert.Equal(t, "Year,GDP\n", readFile(t, result.DataPath))
	assert.Equal(t,
		",GDP\ncount,0.0\nmean,\nstd,\nmin,\n25%,\n50%,\n75%,\nmax,\n",
		readFile(t, result.StatisticsPath))
	assert.Equal(t, 0, result.Summary.Count)
}

func TestLoadManager_Load_Idempotent(t *testing.T) {
	dir := t.TempDir()
	manager := NewLoadManager(dir, models.GDPIndicator, newTestLogger())

	first, err := manager.Load(scenarioTable(), "BR")
	require.NoError(t, err)
	data1 := readFile(t, first.DataPath)
	stats1 := readFile(t, first.StatisticsPath)

	second, err := manager.Load(scenarioTable(), "BR")
	require.NoError(t, err)
	assert.Equal(t, data1, readFile(t, second.DataPath))
	assert.Equal(t, stats1, readFile(t, second.StatisticsPath))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "временные файлы не должны оставаться")
}

func TestLoadManager_Load_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "BR_GDP_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new file\n"), 0644))

	manager := NewLoadManager(dir, models.GDPIndicator, newTestLogger())
	_, err := manager.Load(scenarioTable(), "BR")
	require.NoError(t, err)

	assert.Equal(t, "Year,GDP\n2019,100.0\n2021,300.0\n", readFile(t, path))
}

func TestLoadManager_Load_UnwritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	manager := NewLoadManager(dir, models.GDPIndicator, newTestLogger())

	_, err := manager.Load(scenarioTable(), "BR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type failingLoader struct {
	dataCalls int
}

func (l *failingLoader) SaveData(*models.ObservationTable, string) (string, error) {
	l.dataCalls++
	return "data.csv", nil
}

func (l *failingLoader) SaveStatistics(models.StatisticsSummary, string) (string, error) {
	return "", errors.New("disk full")
}

func TestLoadManager_Load_StatisticsFailure(t *testing.T) {
	loader := &failingLoader{}
	manager := NewLoadManagerWithLoader(loader, newTestLogger())

	_, err := manager.Load(scenarioTable(), "BR")
	assert.EqualError(t, err, "ошибка при сохранении статистики: disk full")
	assert.Equal(t, 1, loader.dataCalls)
}
