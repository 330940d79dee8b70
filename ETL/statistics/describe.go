package statistics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/LilVoxy/gdp_report/ETL/models"
)

// Describe вычисляет описательную статистику по столбцу значений таблицы
func Describe(table *models.ObservationTable) models.StatisticsSummary {
	return DescribeValues(table.Values())
}

// DescribeValues вычисляет count, mean, std, min, квартили и max.
// Для пустого набора все метрики, кроме count, равны NaN; std требует минимум двух значений.
func DescribeValues(values []float64) models.StatisticsSummary {
	nan := math.NaN()
	summary := models.StatisticsSummary{
		Count: len(values),
		Mean:  nan,
		Std:   nan,
		Min:   nan,
		Q25:   nan,
		Q50:   nan,
		Q75:   nan,
		Max:   nan,
	}
	if len(values) == 0 {
		return summary
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	summary.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		summary.Std = stat.StdDev(sorted, nil)
	}
	summary.Min = floats.Min(sorted)
	summary.Max = floats.Max(sorted)
	summary.Q25 = Quantile(0.25, sorted)
	summary.Q50 = Quantile(0.50, sorted)
	summary.Q75 = Quantile(0.75, sorted)

	return summary
}

// Quantile возвращает p-квантиль отсортированного набора с линейной интерполяцией
// между соседними порядковыми статистиками (позиция p*(n-1)).
func Quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 0 || p < 0 || p > 1 {
		return math.NaN()
	}

	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)

	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
