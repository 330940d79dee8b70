package linear_regression

import (
	"fmt"
	"time"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

// Config конфигурация процессора линейной регрессии
type Config struct {
	// Количество лет для прогноза
	ForecastYears int
	// Уровень доверия (0.90, 0.95, 0.99)
	ConfidenceLevel float64
	// Минимальное значение r² для признания модели значимой
	MinR2Threshold float64
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		ForecastYears:   5,
		ConfidenceLevel: 0.95,
		MinR2Threshold:  0.30, // 30% объяснённой вариации
	}
}

// TrendReport результат анализа тренда
type TrendReport struct {
	Result    *RegressionResult
	Forecasts []ForecastPoint
}

// RegressionProcessor процессор линейной регрессии
type RegressionProcessor struct {
	logger *utils.ETLLogger
	config Config
}

// NewRegressionProcessor создает новый процессор линейной регрессии
func NewRegressionProcessor(logger *utils.ETLLogger, config Config) *RegressionProcessor {
	return &RegressionProcessor{
		logger: logger,
		config: config,
	}
}

// Process строит модель тренда по таблице наблюдений и генерирует прогнозы
func (p *RegressionProcessor) Process(table *models.ObservationTable) (*TrendReport, error) {
	startTime := time.Now()
	p.logger.Info("Запуск анализа тренда показателя")

	// 1. Получаем данные для анализа
	dataPoints, err := NewDataService(table).GetYearlyData()
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении данных: %w", err)
	}
	p.logger.Info("Получено %d точек данных для анализа", len(dataPoints))

	// 2. Строим модель линейной регрессии
	result, err := LinearRegression(dataPoints)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении модели линейной регрессии: %w", err)
	}

	p.logger.Info("Результаты модели: наклон (a)=%.3f, сдвиг (b)=%.3f, R=%.3f, R²=%.3f",
		result.A, result.B, result.R, result.R2)
	p.logger.Info("Период анализа: с %d по %d", result.PeriodStart, result.PeriodEnd)

	if result.R2 < p.config.MinR2Threshold {
		p.logger.Warning("Низкое качество модели (R²=%.3f < %.3f). Однако прогноз будет сделан.",
			result.R2, p.config.MinR2Threshold)
	}

	// 3. Генерируем прогнозы
	forecasts := GenerateForecasts(result, p.config.ForecastYears, p.config.ConfidenceLevel)
	for _, f := range forecasts {
		p.logger.Info("Прогноз на %d: %.3f [%.3f; %.3f]", f.Year, f.ForecastValue, f.CILower, f.CIUpper)
	}

	p.logger.Info("Анализ тренда завершен. Время выполнения: %v", time.Since(startTime))
	return &TrendReport{Result: result, Forecasts: forecasts}, nil
}
