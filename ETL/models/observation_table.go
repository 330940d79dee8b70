package models

import (
	"sort"
)

// Observation строка таблицы наблюдений
type Observation struct {
	Year  int
	Value float64
}

// ObservationTable упорядоченная таблица значений показателя с индексом по году.
// Порядок строк соответствует порядку добавления, год уникален.
type ObservationTable struct {
	rows  []Observation
	index map[int]int
}

// NewObservationTable создает пустую таблицу наблюдений
func NewObservationTable() *ObservationTable {
	return &ObservationTable{
		index: make(map[int]int),
	}
}

// Add добавляет строку в конец таблицы.
// Возвращает false, если год уже присутствует (таблица не меняется).
func (t *ObservationTable) Add(year int, value float64) bool {
	if _, exists := t.index[year]; exists {
		return false
	}
	t.index[year] = len(t.rows)
	t.rows = append(t.rows, Observation{Year: year, Value: value})
	return true
}

// Get возвращает значение за указанный год
func (t *ObservationTable) Get(year int) (float64, bool) {
	i, ok := t.index[year]
	if !ok {
		return 0, false
	}
	return t.rows[i].Value, true
}

// Len возвращает количество строк
func (t *ObservationTable) Len() int {
	return len(t.rows)
}

// Rows возвращает копию строк в порядке добавления
func (t *ObservationTable) Rows() []Observation {
	rows := make([]Observation, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Values возвращает значения в порядке добавления
func (t *ObservationTable) Values() []float64 {
	values := make([]float64, len(t.rows))
	for i, row := range t.rows {
		values[i] = row.Value
	}
	return values
}

// SortedByYear возвращает строки в хронологическом порядке
func (t *ObservationTable) SortedByYear() []Observation {
	rows := t.Rows()
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Year < rows[j].Year
	})
	return rows
}

// Years возвращает годы по возрастанию
func (t *ObservationTable) Years() []int {
	years := make([]int, 0, len(t.rows))
	for _, row := range t.SortedByYear() {
		years = append(years, row.Year)
	}
	return years
}
