package models

import "fmt"

// Indicator описывает показатель источника данных
type Indicator struct {
	Code   string // Код показателя в API, например NY.GDP.MKTP.CD
	Label  string // Короткое имя для файлов и заголовков
	Column string // Имя столбца значений в CSV
	Unit   string // Единица измерения
}

// GDPIndicator ВВП в текущих долларах США
var GDPIndicator = Indicator{
	Code:   "NY.GDP.MKTP.CD",
	Label:  "GDP",
	Column: "GDP",
	Unit:   "current US$",
}

// AxisName возвращает подпись оси значений, например "GDP (current US$)"
func (i Indicator) AxisName() string {
	return fmt.Sprintf("%s (%s)", i.Label, i.Unit)
}

// DataFileName возвращает имя файла с очищенными данными
func (i Indicator) DataFileName(countryCode string) string {
	return fmt.Sprintf("%s_%s_data.csv", countryCode, i.Label)
}

// StatisticsFileName возвращает имя файла со статистикой
func (i Indicator) StatisticsFileName(countryCode string) string {
	return fmt.Sprintf("%s_%s_statistics.csv", countryCode, i.Label)
}

// StatisticsSummary описательная статистика по столбцу значений.
// Для пустой таблицы Count равен 0, остальные метрики NaN.
type StatisticsSummary struct {
	Count int
	Mean  float64
	Std   float64 // Выборочное стандартное отклонение
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Metric одна именованная метрика сводки
type Metric struct {
	Name  string
	Value float64
}

// Metrics возвращает метрики в фиксированном порядке
func (s StatisticsSummary) Metrics() []Metric {
	return []Metric{
		{Name: "count", Value: float64(s.Count)},
		{Name: "mean", Value: s.Mean},
		{Name: "std", Value: s.Std},
		{Name: "min", Value: s.Min},
		{Name: "25%", Value: s.Q25},
		{Name: "50%", Value: s.Q50},
		{Name: "75%", Value: s.Q75},
		{Name: "max", Value: s.Max},
	}
}
