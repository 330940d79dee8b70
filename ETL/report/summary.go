package report

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/LilVoxy/gdp_report/ETL/linear_regression"
	"github.com/LilVoxy/gdp_report/ETL/models"
)

// PrintSummary выводит статистику показателя таблицей и пути записанных файлов
func PrintSummary(w io.Writer, result *Result, indicator models.Indicator) {
	bold := color.New(color.Bold).SprintfFunc()
	colored := color.New(color.FgBlue, color.Bold).SprintfFunc()
	m := newPrinter()

	output(w, "Country:\t%s\n", colored(result.CountryCode))
	output(w, "Indicator:\t%s\n", bold(indicator.AxisName()))
	output(w, "Observations:\t%s of %s\n", bold(m.Sprintf("%d", result.Cleanse.Kept)), m.Sprintf("%d", result.Fetched))

	if result.Load == nil {
		return
	}

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Metric", indicator.Column})
	tbl.SetBorder(true)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, metric := range result.Load.Summary.Metrics() {
		tbl.Append([]string{metric.Name, formatMetric(m, metric)})
	}
	tbl.Render()

	output(w, "Data:\t\t%s\n", bold(result.Load.DataPath))
	output(w, "Statistics:\t%s\n", bold(result.Load.StatisticsPath))
}

// PrintTrend выводит параметры тренда и прогноз с доверительными интервалами
func PrintTrend(w io.Writer, trend *linear_regression.TrendReport) {
	bold := color.New(color.Bold).SprintfFunc()
	m := newPrinter()

	res := trend.Result
	output(w, "Trend %d-%d:\t%s\n", res.PeriodStart, res.PeriodEnd,
		bold(m.Sprintf("%.2f per year, R² = %.3f", res.A, res.R2)))

	if len(trend.Forecasts) == 0 {
		return
	}

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Year", "Forecast", "Lower", "Upper"})
	tbl.SetBorder(true)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, f := range trend.Forecasts {
		tbl.Append([]string{
			strconv.Itoa(f.Year),
			m.Sprintf("%.2f", f.ForecastValue),
			m.Sprintf("%.2f", f.CILower),
			m.Sprintf("%.2f", f.CIUpper),
		})
	}
	tbl.Render()
}

// newPrinter возвращает принтер чисел с разделителями разрядов
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// formatMetric форматирует значение с разделителями разрядов, NaN выводится как "-"
func formatMetric(m *message.Printer, metric models.Metric) string {
	if math.IsNaN(metric.Value) {
		return "-"
	}
	if metric.Name == "count" {
		return m.Sprintf("%d", int64(metric.Value))
	}
	return m.Sprintf("%.2f", metric.Value)
}

// output выводит форматированное сообщение
func output(w io.Writer, format string, a ...any) {
	_, err := fmt.Fprintf(w, format, a...)
	if err != nil {
		log.Println("output error", err.Error())
	}
}
