package transform

import (
	"time"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

// Transformer преобразует сырые записи показателя в таблицу наблюдений
type Transformer struct {
	logger *utils.ETLLogger
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger) *Transformer {
	return &Transformer{
		logger: logger,
	}
}

// Transform выполняет очистку данных: приводит значения к числу, отбрасывает
// нечисловые записи и индексирует таблицу по году. Порядок строк сохраняется.
// Ошибок не бывает, отброшенные записи только подсчитываются.
func (t *Transformer) Transform(raw []models.RawObservation) (*models.ObservationTable, models.CleanseReport) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (Очистка данных)")

	table := models.NewObservationTable()
	report := models.CleanseReport{Input: len(raw)}

	for _, observation := range raw {
		value, ok := observation.Value.Float()
		if !ok {
			t.logger.Debug("Отброшена запись за %d: значение %s не является числом", observation.Year, observation.Value)
			report.Dropped++
			continue
		}
		if !table.Add(observation.Year, value) {
			t.logger.Debug("Отброшена повторная запись за %d", observation.Year)
			report.Dropped++
			continue
		}
		report.Kept++
	}

	t.logger.Debug("Очистка: получено %d, сохранено %d, отброшено %d", report.Input, report.Kept, report.Dropped)
	t.logger.Info("Фаза Transform завершена. Длительность: %v", time.Since(startTime))

	return table, report
}
