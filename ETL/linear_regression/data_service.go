package linear_regression

import (
	"fmt"

	"github.com/LilVoxy/gdp_report/ETL/models"
)

// DataService готовит точки данных для регрессии из таблицы наблюдений
type DataService struct {
	table *models.ObservationTable
}

// NewDataService создает новый сервис для работы с данными
func NewDataService(table *models.ObservationTable) *DataService {
	return &DataService{
		table: table,
	}
}

// GetYearlyData возвращает точки в хронологическом порядке,
// X считается в годах от первого года таблицы
func (s *DataService) GetYearlyData() ([]DataPoint, error) {
	rows := s.table.SortedByYear()
	if len(rows) == 0 {
		return nil, fmt.Errorf("нет данных для построения тренда")
	}

	baseYear := rows[0].Year
	dataPoints := make([]DataPoint, 0, len(rows))
	for _, row := range rows {
		dataPoints = append(dataPoints, DataPoint{
			X:    float64(row.Year - baseYear),
			Y:    row.Value,
			Year: row.Year,
		})
	}

	return dataPoints, nil
}
