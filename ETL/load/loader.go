package load

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

// Loader интерфейс для сохранения результатов ETL
type Loader interface {
	// SaveData сохраняет очищенную таблицу и возвращает путь к файлу
	SaveData(table *models.ObservationTable, countryCode string) (string, error)

	// SaveStatistics сохраняет описательную статистику и возвращает путь к файлу
	SaveStatistics(summary models.StatisticsSummary, countryCode string) (string, error)
}

// CSVLoader реализация Loader, записывающая плоские CSV-файлы.
// Существующие файлы перезаписываются.
type CSVLoader struct {
	outputDir string
	indicator models.Indicator
	logger    *utils.ETLLogger
}

// NewCSVLoader создает новый экземпляр CSVLoader
func NewCSVLoader(outputDir string, indicator models.Indicator, logger *utils.ETLLogger) *CSVLoader {
	if outputDir == "" {
		outputDir = "."
	}
	return &CSVLoader{
		outputDir: outputDir,
		indicator: indicator,
		logger:    logger,
	}
}

// SaveData записывает <страна>_<показатель>_data.csv: заголовок Year,<столбец>,
// строки в порядке таблицы
func (l *CSVLoader) SaveData(table *models.ObservationTable, countryCode string) (string, error) {
	records := [][]string{{"Year", l.indicator.Column}}
	for _, row := range table.Rows() {
		records = append(records, []string{strconv.Itoa(row.Year), FormatFloat(row.Value)})
	}

	path := filepath.Join(l.outputDir, l.indicator.DataFileName(countryCode))
	if err := writeCSV(path, records); err != nil {
		return "", fmt.Errorf("ошибка записи данных в %s: %w", path, err)
	}

	l.logger.Debug("Записано %d строк в %s", table.Len(), path)
	return path, nil
}

// SaveStatistics записывает <страна>_<показатель>_statistics.csv: заголовок ,<столбец>,
// по одной строке на метрику
func (l *CSVLoader) SaveStatistics(summary models.StatisticsSummary, countryCode string) (string, error) {
	records := [][]string{{"", l.indicator.Column}}
	for _, metric := range summary.Metrics() {
		records = append(records, []string{metric.Name, FormatFloat(metric.Value)})
	}

	path := filepath.Join(l.outputDir, l.indicator.StatisticsFileName(countryCode))
	if err := writeCSV(path, records); err != nil {
		return "", fmt.Errorf("ошибка записи статистики в %s: %w", path, err)
	}

	l.logger.Debug("Статистика записана в %s", path)
	return path, nil
}

// writeCSV записывает файл через временный файл в том же каталоге
func writeCSV(path string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".gdp-report-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
