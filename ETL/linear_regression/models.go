package linear_regression

// DataPoint представляет точку данных для линейной регрессии
type DataPoint struct {
	X    float64 // Порядковый номер года относительно начала периода
	Y    float64 // Значение показателя
	Year int     // Фактический год
}

// RegressionResult содержит результаты линейной регрессии
type RegressionResult struct {
	A           float64     // Коэффициент наклона (прирост за год)
	B           float64     // Сдвиг
	R           float64     // Коэффициент корреляции Пирсона
	R2          float64     // Коэффициент детерминации
	PeriodStart int         // Первый год анализируемого периода
	PeriodEnd   int         // Последний год анализируемого периода
	DataPoints  []DataPoint // Исходные точки данных
}

// ForecastPoint представляет точку прогноза
type ForecastPoint struct {
	Year          int     // Год прогноза
	ForecastValue float64 // Прогнозируемое значение
	CILower       float64 // Нижняя граница доверительного интервала
	CIUpper       float64 // Верхняя граница доверительного интервала
}
