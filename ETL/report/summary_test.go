package report

import (
	"bytes"
	"math"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/LilVoxy/gdp_report/ETL/linear_regression"
	"github.com/LilVoxy/gdp_report/ETL/load"
	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/statistics"
)

func TestPrintSummary(t *testing.T) {
	color.NoColor = true

	summary := statistics.DescribeValues([]float64{1000000, 3000000})
	result := &Result{
		CountryCode: "USA",
		Fetched:     3,
		Cleanse:     models.CleanseReport{Input: 3, Kept: 2, Dropped: 1},
		Load: &load.LoadResult{
			DataPath:       "out/USA_GDP_data.csv",
			StatisticsPath: "out/USA_GDP_statistics.csv",
			Summary:        summary,
		},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, result, models.GDPIndicator)
	out := buf.String()

	assert.Contains(t, out, "USA")
	assert.Contains(t, out, "GDP (current US$)")
	assert.Contains(t, out, "2 of 3")
	assert.Contains(t, out, "2,000,000.00")
	assert.Contains(t, out, "3,000,000.00")
	assert.Contains(t, out, "out/USA_GDP_data.csv")
	assert.Contains(t, out, "out/USA_GDP_statistics.csv")
}

func TestPrintSummary_EmptyTable(t *testing.T) {
	color.NoColor = true

	result := &Result{
		CountryCode: "XX",
		Load:        &load.LoadResult{Summary: statistics.DescribeValues(nil)},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, result, models.GDPIndicator)
	assert.Contains(t, buf.String(), "-")
}

func TestFormatMetric(t *testing.T) {
	m := newPrinter()
	assert.Equal(t, "-", formatMetric(m, models.Metric{Name: "std", Value: math.NaN()}))
	assert.Equal(t, "62", formatMetric(m, models.Metric{Name: "count", Value: 62}))
	assert.Equal(t, "1,234.50", formatMetric(m, models.Metric{Name: "mean", Value: 1234.5}))
}

func TestPrintTrend(t *testing.T) {
	color.NoColor = true

	trend := &linear_regression.TrendReport{
		Result: &linear_regression.RegressionResult{A: 1500, B: 10, R: 1, R2: 1, PeriodStart: 2000, PeriodEnd: 2010},
		Forecasts: []linear_regression.ForecastPoint{
			{Year: 2011, ForecastValue: 16510, CILower: 16000, CIUpper: 17020},
		},
	}

	var buf bytes.Buffer
	PrintTrend(&buf, trend)
	out := buf.String()

	assert.Contains(t, out, "Trend 2000-2010")
	assert.Contains(t, out, "1,500.00 per year")
	assert.Contains(t, out, "2011")
	assert.Contains(t, out, "16,510.00")
	assert.Contains(t, out, "17,020.00")
}
