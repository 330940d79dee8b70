package visualize

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

// chartSource данные, по которым строится страница графика
type chartSource struct {
	table       *models.ObservationTable
	countryCode string
	indicator   models.Indicator
}

// setupRoutes настраивает маршруты просмотра графика
func setupRoutes(router *mux.Router, source chartSource, h *hub, logger *utils.ETLLogger) {
	router.Use(noCacheMiddleware)

	// Страница графика
	router.HandleFunc("/", chartHandler(source, logger)).Methods("GET")

	// Сессия просмотра
	router.HandleFunc("/ws", h.serveSession).Methods("GET")

	// Явное закрытие просмотра кнопкой на странице
	router.HandleFunc("/api/dismiss", func(w http.ResponseWriter, r *http.Request) {
		h.dismiss("нажата кнопка закрытия")
		w.WriteHeader(http.StatusNoContent)
	}).Methods("POST")
}

func chartHandler(source chartSource, logger *utils.ETLLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		line := NewLineChart(source.table, source.countryCode, source.indicator)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := RenderPage(w, line); err != nil {
			logger.Error("Ошибка при отрисовке графика: %v", err)
		}
	}
}

// noCacheMiddleware запрещает кэширование страниц просмотра
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
