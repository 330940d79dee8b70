package linear_regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// RoundToThousandth округляет число до тысячных (3 знака после запятой)
func RoundToThousandth(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// LinearRegression строит модель Y = A*X + B методом наименьших квадратов
func LinearRegression(points []DataPoint) (*RegressionResult, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("для расчета линейной регрессии требуется минимум 2 точки, получено: %d", len(points))
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	minYear, maxYear := points[0].Year, points[0].Year
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
		if p.Year < minYear {
			minYear = p.Year
		}
		if p.Year > maxYear {
			maxYear = p.Year
		}
	}

	if stat.Variance(xs, nil) < 1e-10 {
		return nil, fmt.Errorf("все X одинаковы, невозможно вычислить наклон")
	}

	// gonum возвращает y = alpha + beta*x
	b, a := stat.LinearRegression(xs, ys, nil, false)

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		r = 0 // все значения Y одинаковы
	}

	return &RegressionResult{
		A:           RoundToThousandth(a),
		B:           RoundToThousandth(b),
		R:           RoundToThousandth(r),
		R2:          RoundToThousandth(r * r),
		PeriodStart: minYear,
		PeriodEnd:   maxYear,
		DataPoints:  points,
	}, nil
}

// Predict прогнозирует значение Y для заданного X
func Predict(result *RegressionResult, x float64) float64 {
	return RoundToThousandth(result.A*x + result.B)
}

// tStatistic приближенное значение t-статистики для уровня доверия
func tStatistic(confidenceLevel float64) float64 {
	switch confidenceLevel {
	case 0.99:
		return 2.58
	case 0.90:
		return 1.64
	default:
		return 2.0
	}
}

// CalculateConfidenceInterval вычисляет доверительный интервал прогноза в точке x
func CalculateConfidenceInterval(result *RegressionResult, x float64, confidenceLevel float64) (float64, float64) {
	n := float64(len(result.DataPoints))
	yPred := Predict(result, x)
	if n < 3 {
		// при двух точках остаточная дисперсия не определена
		return yPred, yPred
	}

	xs := make([]float64, len(result.DataPoints))
	for i, p := range result.DataPoints {
		xs[i] = p.X
	}
	meanX := stat.Mean(xs, nil)

	sumSqDevX := 0.0
	sumSqResiduals := 0.0
	for _, p := range result.DataPoints {
		predY := Predict(result, p.X)
		sumSqDevX += (p.X - meanX) * (p.X - meanX)
		sumSqResiduals += (p.Y - predY) * (p.Y - predY)
	}

	standardError := math.Sqrt(sumSqResiduals / (n - 2))
	predictionStdError := standardError * math.Sqrt(1+1/n+(x-meanX)*(x-meanX)/sumSqDevX)

	margin := tStatistic(confidenceLevel) * predictionStdError
	return RoundToThousandth(yPred - margin), RoundToThousandth(yPred + margin)
}

// GenerateForecasts генерирует прогнозы на указанное количество лет после конца периода
func GenerateForecasts(result *RegressionResult, yearsAhead int, confidenceLevel float64) []ForecastPoint {
	if yearsAhead <= 0 {
		return nil
	}

	maxX := 0.0
	for _, p := range result.DataPoints {
		if p.X > maxX {
			maxX = p.X
		}
	}

	forecasts := make([]ForecastPoint, yearsAhead)
	for i := 0; i < yearsAhead; i++ {
		x := maxX + float64(i+1)
		lower, upper := CalculateConfidenceInterval(result, x, confidenceLevel)

		forecasts[i] = ForecastPoint{
			Year:          result.PeriodEnd + i + 1,
			ForecastValue: Predict(result, x),
			CILower:       lower,
			CIUpper:       upper,
		}
	}

	return forecasts
}
