package extractors

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

// Extractor координирует процесс извлечения данных из API показателей
type Extractor struct {
	logger             *utils.ETLLogger
	indicatorExtractor *IndicatorExtractor
}

// NewExtractor создает новый экземпляр Extractor.
// timeout ограничивает время одного запроса, 0 отключает ограничение.
func NewExtractor(baseURL string, timeout time.Duration, indicator models.Indicator, logger *utils.ETLLogger) *Extractor {
	client := &http.Client{Timeout: timeout}
	return &Extractor{
		logger:             logger,
		indicatorExtractor: NewIndicatorExtractor(client, baseURL, indicator, logger),
	}
}

// Extract извлекает записи показателя по стране за годы startYear..endYear включительно
// и возвращает их отсортированными по значению
func (e *Extractor) Extract(ctx context.Context, countryCode string, startYear, endYear int) ([]models.RawObservation, error) {
	startTime := time.Now()
	e.logger.LogExtractStart()

	if startYear > endYear {
		return nil, fmt.Errorf("%w: %d:%d", ErrInvalidRange, startYear, endYear)
	}

	observations, err := e.indicatorExtractor.ExtractObservations(ctx, countryCode, startYear, endYear)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных показателя: %v", err)
		return nil, fmt.Errorf("ошибка извлечения данных показателя: %w", err)
	}

	SortByValue(observations)

	e.logger.LogExtractComplete(len(observations), time.Since(startTime))
	return observations, nil
}
