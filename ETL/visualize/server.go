package visualize

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

// DefaultAddr адрес локального сервера просмотра по умолчанию
const DefaultAddr = "127.0.0.1:8089"

// Visualizer показывает график показателя в браузере и ждет завершения просмотра
type Visualizer struct {
	addr      string
	indicator models.Indicator
	grace     time.Duration
	logger    *utils.ETLLogger
}

// NewVisualizer создает новый экземпляр Visualizer
func NewVisualizer(addr string, indicator models.Indicator, logger *utils.ETLLogger) *Visualizer {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Visualizer{
		addr:      addr,
		indicator: indicator,
		grace:     defaultReconnectGrace,
		logger:    logger,
	}
}

// WithReconnectGrace задает время ожидания повторного подключения страницы
func (v *Visualizer) WithReconnectGrace(grace time.Duration) *Visualizer {
	v.grace = grace
	return v
}

// Show запускает локальный сервер с графиком и блокируется, пока просмотр не будет завершен:
// закрыта вкладка, нажата кнопка закрытия или отменен ctx
func (v *Visualizer) Show(ctx context.Context, table *models.ObservationTable, countryCode string) error {
	listener, err := net.Listen("tcp", v.addr)
	if err != nil {
		return fmt.Errorf("не удалось запустить сервер просмотра на %s: %w", v.addr, err)
	}
	return v.ShowOn(ctx, listener, table, countryCode)
}

// ShowOn то же, что Show, но на уже открытом listener. Listener закрывается при выходе.
func (v *Visualizer) ShowOn(ctx context.Context, listener net.Listener, table *models.ObservationTable, countryCode string) error {
	startTime := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h := newHub(v.grace, v.logger)
	router := mux.NewRouter()
	setupRoutes(router, chartSource{table: table, countryCode: countryCode, indicator: v.indicator}, h, v.logger)

	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()
	go h.run(ctx)

	v.logger.Info("График %q доступен по адресу http://%s/ (закройте вкладку или нажмите Close viewer, чтобы продолжить)",
		ChartTitle(v.indicator, countryCode), listener.Addr())

	var err error
	select {
	case <-h.dismissed:
	case <-ctx.Done():
		v.logger.Info("Ожидание просмотра прервано")
	case err = <-serveErr:
	}

	cancel()
	<-h.stopped

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		v.logger.Error("Ошибка при остановке сервера просмотра: %v", shutdownErr)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка сервера просмотра: %w", err)
	}

	v.logger.Debug("Просмотр длился %v", time.Since(startTime))
	return nil
}
