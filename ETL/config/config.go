package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LilVoxy/gdp_report/ETL/extractors"
	"github.com/LilVoxy/gdp_report/ETL/models"
)

// ErrInvalidRange возвращается, если начальный год больше конечного
var ErrInvalidRange = extractors.ErrInvalidRange

// ErrEmptyCountry возвращается, если не указан код страны
var ErrEmptyCountry = errors.New("не указан код страны")

// ReportConfig содержит конфигурацию для построения отчета
type ReportConfig struct {
	// Код страны и диапазон лет (включительно)
	Country   string `json:"country"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`

	// Показатель, по которому строится отчет
	Indicator models.Indicator `json:"-"`

	// Каталог для CSV-файлов
	OutputDir string `json:"output_dir"`

	// Адрес API и таймаут запроса (0 отключает таймаут)
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`

	// Адрес сервера просмотра графика
	ViewerAddr string `json:"viewer_addr"`
	NoViewer   bool   `json:"no_viewer"`

	// Интервал запуска в режиме schedule
	Interval time.Duration `json:"interval"`

	// Параметры тренда
	ForecastYears   int     `json:"forecast_years"`
	ConfidenceLevel float64 `json:"confidence_level"`
	MinR2           float64 `json:"min_r2"`

	// DSN MySQL для журнала запусков. Пустая строка отключает журнал.
	MySQLDSN string `json:"-"`

	// Уровень и каталог логов
	LogLevel string `json:"log_level"`
	LogDir   string `json:"log_dir"`
}

// DefaultReportConfig значения конфигурации по умолчанию
var DefaultReportConfig = ReportConfig{
	Country:         "USA",
	StartYear:       1960,
	EndYear:         2021,
	Indicator:       models.GDPIndicator,
	OutputDir:       ".",
	BaseURL:         extractors.DefaultBaseURL,
	Timeout:         30 * time.Second,
	ViewerAddr:      "127.0.0.1:8089",
	Interval:        1 * time.Hour,
	ForecastYears:   5,
	ConfidenceLevel: 0.95,
	MinR2:           0.30,
	LogLevel:        "info",
	LogDir:          ".",
}

// GetConfig возвращает конфигурацию по умолчанию
func GetConfig() ReportConfig {
	return DefaultReportConfig
}

// Validate проверяет конфигурацию до выполнения запросов
func (c *ReportConfig) Validate() error {
	c.Country = strings.TrimSpace(c.Country)
	if c.Country == "" {
		return ErrEmptyCountry
	}

	if c.StartYear > c.EndYear {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRange, c.StartYear, c.EndYear)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("таймаут не может быть отрицательным: %v", c.Timeout)
	}

	if c.Interval <= 0 {
		return fmt.Errorf("интервал запуска должен быть положительным: %v", c.Interval)
	}

	if c.ForecastYears < 0 {
		return fmt.Errorf("горизонт прогноза не может быть отрицательным: %d", c.ForecastYears)
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	if c.Indicator.Code == "" {
		c.Indicator = models.GDPIndicator
	}

	return nil
}
