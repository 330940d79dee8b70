package visualize

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/LilVoxy/gdp_report/ETL/models"
)

// viewerScript открывает сессию просмотра и добавляет кнопку закрытия.
// Закрытие вкладки завершает сессию, и программа продолжает работу.
const viewerScript = `
<script type="text/javascript">
(function () {
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  window.gdpViewerSession = new WebSocket(scheme + location.host + "/ws");
})();
function dismissViewer() {
  fetch("/api/dismiss", {method: "POST"}).then(function () { window.close(); });
}
</script>
<div style="text-align:center;margin:12px">
  <button onclick="dismissViewer()">Close viewer</button>
</div>
`

// ChartTitle возвращает заголовок графика, например "GDP for BR"
func ChartTitle(indicator models.Indicator, countryCode string) string {
	return fmt.Sprintf("%s for %s", indicator.Label, countryCode)
}

// NewLineChart строит линейный график значения показателя по годам.
// Точки упорядочены хронологически независимо от порядка строк таблицы.
func NewLineChart(table *models.ObservationTable, countryCode string, indicator models.Indicator) *charts.Line {
	rows := table.SortedByYear()
	years := make([]string, len(rows))
	items := make([]opts.LineData, len(rows))
	for i, row := range rows {
		years[i] = strconv.Itoa(row.Year)
		items[i] = opts.LineData{Value: row.Value}
	}

	title := ChartTitle(indicator, countryCode)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     types.ThemeWesteros,
			Width:     "1100px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Year",
			AxisLabel: &opts.AxisLabel{
				Show:   true,
				Rotate: 45,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: indicator.AxisName(),
			AxisLabel: &opts.AxisLabel{
				Show: true,
			},
		}),
	)
	line.SetXAxis(years).AddSeries(indicator.Label, items)

	return line
}

// RenderPage выводит HTML-страницу графика вместе со скриптом сессии просмотра
func RenderPage(w io.Writer, line *charts.Line) error {
	if err := line.Render(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, viewerScript)
	return err
}
