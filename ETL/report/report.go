package report

import (
	"context"
	"fmt"

	"github.com/LilVoxy/gdp_report/ETL/extractors"
	"github.com/LilVoxy/gdp_report/ETL/load"
	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/transform"
	"github.com/LilVoxy/gdp_report/ETL/visualize"
)

// Report описывает четыре шага построения отчета по показателю
type Report interface {
	Fetch(ctx context.Context, countryCode string, startYear, endYear int) ([]models.RawObservation, error)
	Cleanse(raw []models.RawObservation) (*models.ObservationTable, models.CleanseReport)
	Persist(table *models.ObservationTable, countryCode string) (*load.LoadResult, error)
	Visualize(ctx context.Context, table *models.ObservationTable, countryCode string) error
}

// Result итог построения отчета
type Result struct {
	CountryCode string
	Fetched     int
	Table       *models.ObservationTable
	Cleanse     models.CleanseReport
	Load        *load.LoadResult
}

// Hook вызывается после сохранения данных и до показа графика
type Hook func(ctx context.Context, result *Result)

// GenerateReport выполняет шаги отчета по порядку: Fetch, Cleanse, Persist, Visualize.
// Ошибка любого шага прерывает выполнение; результат содержит все завершенные шаги.
func GenerateReport(ctx context.Context, r Report, countryCode string, startYear, endYear int, hooks ...Hook) (*Result, error) {
	result := &Result{CountryCode: countryCode}

	raw, err := r.Fetch(ctx, countryCode, startYear, endYear)
	if err != nil {
		return result, fmt.Errorf("ошибка в фазе Fetch: %w", err)
	}
	result.Fetched = len(raw)

	result.Table, result.Cleanse = r.Cleanse(raw)

	result.Load, err = r.Persist(result.Table, countryCode)
	if err != nil {
		return result, fmt.Errorf("ошибка в фазе Persist: %w", err)
	}

	for _, hook := range hooks {
		hook(ctx, result)
	}

	if err := r.Visualize(ctx, result.Table, countryCode); err != nil {
		return result, fmt.Errorf("ошибка в фазе Visualize: %w", err)
	}

	return result, nil
}

// IndicatorReport отчет по одному показателю, собранный из компонентов ETL
type IndicatorReport struct {
	extractor   *extractors.Extractor
	transformer *transform.Transformer
	loadManager *load.LoadManager
	visualizer  *visualize.Visualizer
}

// NewIndicatorReport создает новый экземпляр IndicatorReport.
// Если visualizer равен nil, шаг Visualize пропускается.
func NewIndicatorReport(extractor *extractors.Extractor, transformer *transform.Transformer, loadManager *load.LoadManager, visualizer *visualize.Visualizer) *IndicatorReport {
	return &IndicatorReport{
		extractor:   extractor,
		transformer: transformer,
		loadManager: loadManager,
		visualizer:  visualizer,
	}
}

// Fetch извлекает записи показателя
func (r *IndicatorReport) Fetch(ctx context.Context, countryCode string, startYear, endYear int) ([]models.RawObservation, error) {
	return r.extractor.Extract(ctx, countryCode, startYear, endYear)
}

// Cleanse приводит записи к таблице наблюдений
func (r *IndicatorReport) Cleanse(raw []models.RawObservation) (*models.ObservationTable, models.CleanseReport) {
	return r.transformer.Transform(raw)
}

// Persist сохраняет таблицу и статистику
func (r *IndicatorReport) Persist(table *models.ObservationTable, countryCode string) (*load.LoadResult, error) {
	return r.loadManager.Load(table, countryCode)
}

// Visualize показывает график и ждет завершения просмотра
func (r *IndicatorReport) Visualize(ctx context.Context, table *models.ObservationTable, countryCode string) error {
	if r.visualizer == nil {
		return nil
	}
	return r.visualizer.Show(ctx, table, countryCode)
}
