package load

import (
	"fmt"
	"time"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/statistics"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

// LoadResult содержит пути записанных файлов и рассчитанную статистику
type LoadResult struct {
	DataPath       string
	StatisticsPath string
	Summary        models.StatisticsSummary
}

// LoadManager отвечает за управление фазой сохранения данных
type LoadManager struct {
	logger *utils.ETLLogger
	loader Loader
}

// NewLoadManager создает новый экземпляр LoadManager с CSV-загрузчиком
func NewLoadManager(outputDir string, indicator models.Indicator, logger *utils.ETLLogger) *LoadManager {
	return NewLoadManagerWithLoader(NewCSVLoader(outputDir, indicator, logger), logger)
}

// NewLoadManagerWithLoader создает LoadManager с произвольной реализацией Loader
func NewLoadManagerWithLoader(loader Loader, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		logger: logger,
		loader: loader,
	}
}

// Load выполняет фазу Load: сохраняет таблицу, рассчитывает статистику и сохраняет ее.
// Обе записи выполняются безусловно, пустая таблица не является ошибкой.
func (m *LoadManager) Load(table *models.ObservationTable, countryCode string) (*LoadResult, error) {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Сохранение данных)")

	// 1. Сохраняем очищенные данные
	dataPath, err := m.loader.SaveData(table, countryCode)
	if err != nil {
		m.logger.Error("Ошибка при сохранении данных: %v", err)
		return nil, fmt.Errorf("ошибка при сохранении данных: %w", err)
	}

	// 2. Рассчитываем и сохраняем статистику
	summary := statistics.Describe(table)
	statisticsPath, err := m.loader.SaveStatistics(summary, countryCode)
	if err != nil {
		m.logger.Error("Ошибка при сохранении статистики: %v", err)
		return nil, fmt.Errorf("ошибка при сохранении статистики: %w", err)
	}

	m.logger.Info("Фаза Load завершена. Длительность: %v", time.Since(startTime))

	return &LoadResult{
		DataPath:       dataPath,
		StatisticsPath: statisticsPath,
		Summary:        summary,
	}, nil
}
