package extractors

import (
	"sort"

	"github.com/LilVoxy/gdp_report/ETL/models"
)

// SortByValue сортирует записи по значению показателя (не по году).
// Числовые значения идут первыми по возрастанию, нечисловые и null остаются
// в конце в исходном относительном порядке.
func SortByValue(observations []models.RawObservation) {
	sort.SliceStable(observations, func(i, j int) bool {
		vi, okI := observations[i].Value.Float()
		vj, okJ := observations[j].Value.Float()
		switch {
		case okI && okJ:
			return vi < vj
		case okI:
			return true
		default:
			return false
		}
	})
}
