package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/urfave/cli/v2"

	"github.com/LilVoxy/gdp_report/ETL/config"
	"github.com/LilVoxy/gdp_report/ETL/extractors"
	"github.com/LilVoxy/gdp_report/ETL/linear_regression"
	"github.com/LilVoxy/gdp_report/ETL/load"
	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/report"
	"github.com/LilVoxy/gdp_report/ETL/transform"
	"github.com/LilVoxy/gdp_report/ETL/utils"
	"github.com/LilVoxy/gdp_report/ETL/visualize"
)

type ETLRunner struct {
	config      config.ReportConfig
	journalDB   *sql.DB
	logger      *utils.ETLLogger
	out         io.Writer
	extractor   *extractors.Extractor
	transformer *transform.Transformer
	loadManager *load.LoadManager
	visualizer  *visualize.Visualizer
	etlLogRepo  models.ETLLogRepository
}

// NewETLRunner создает новый экземпляр ETLRunner
func NewETLRunner(cfg config.ReportConfig) (*ETLRunner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	// Инициализируем логгер
	logger, err := utils.NewETLLogger(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return nil, err
	}

	return newETLRunner(cfg, logger, os.Stdout), nil
}

// newETLRunner собирает компоненты отчета для уже проверенной конфигурации
func newETLRunner(cfg config.ReportConfig, logger *utils.ETLLogger, out io.Writer) *ETLRunner {
	logger.Info("Инициализация ETL Runner")

	runner := &ETLRunner{
		config:      cfg,
		logger:      logger,
		out:         out,
		extractor:   extractors.NewExtractor(cfg.BaseURL, cfg.Timeout, cfg.Indicator, logger),
		transformer: transform.NewTransformer(logger),
		loadManager: load.NewLoadManager(cfg.OutputDir, cfg.Indicator, logger),
		visualizer:  visualize.NewVisualizer(cfg.ViewerAddr, cfg.Indicator, logger),
		etlLogRepo:  models.NopETLLogRepository{},
	}

	if cfg.MySQLDSN != "" {
		runner.connectJournal()
	}

	return runner
}

// connectJournal подключает журнал запусков. Ошибки журнала не прерывают работу.
func (r *ETLRunner) connectJournal() {
	db, err := config.ConnectJournal(r.config.MySQLDSN)
	if err != nil {
		r.logger.Error("Журнал запусков отключен: %v", err)
		return
	}

	etlLogRepo := models.NewMySQLETLLogRepository(db)

	// Создаем таблицу логов, если она еще не существует
	if err := etlLogRepo.CreateETLLogTable(); err != nil {
		r.logger.Error("Журнал запусков отключен: ошибка при создании таблицы логов ETL: %v", err)
		db.Close()
		return
	}

	r.journalDB = db
	r.etlLogRepo = etlLogRepo
	r.logger.Info("Журнал запусков подключен")
}

// Close закрывает соединение с журналом и файл лога
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	if err := config.CloseJournal(r.journalDB); err != nil {
		r.logger.Error("%v", err)
	}
	r.logger.Close()
}

// ExecuteETL выполняет полный процесс: Fetch, Cleanse, Persist и, если withViewer, Visualize
func (r *ETLRunner) ExecuteETL(ctx context.Context, withViewer bool) error {
	startTime := time.Now()
	r.logger.LogETLStart(r.config.Country, r.config.StartYear, r.config.EndYear)

	// Создаем запись в журнале ETL
	runLog := models.NewETLRunLog(r.config.Country, r.config.Indicator.Code, startTime)
	logID, err := r.etlLogRepo.CreateLogEntry(runLog)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале ETL: %v", err)
	}
	runLog.ID = logID

	if lastRun, err := r.etlLogRepo.GetLastSuccessfulRun(r.config.Country, r.config.Indicator.Code); err != nil {
		r.logger.Error("Не удалось получить информацию о последнем успешном запуске: %v", err)
	} else if lastRun != nil {
		r.logger.Info("Последний успешный запуск: %v, сохранено наблюдений: %d", lastRun.EndTime, lastRun.ObservationsKept)
	}

	var viewer *visualize.Visualizer
	if withViewer && !r.config.NoViewer {
		viewer = r.visualizer
	}
	indicatorReport := report.NewIndicatorReport(r.extractor, r.transformer, r.loadManager, viewer)

	result, err := report.GenerateReport(ctx, indicatorReport,
		r.config.Country, r.config.StartYear, r.config.EndYear,
		r.printSummary, r.analyzeTrend)
	if err != nil {
		errMsg := err.Error()
		r.logger.Error("%s", errMsg)
		r.updateETLRunLogFailure(runLog, errMsg)
		return err
	}

	// Обновляем запись в журнале с информацией об успешном выполнении
	r.updateETLRunLogSuccess(runLog, result.Fetched, result.Cleanse.Kept)

	r.logger.LogETLComplete(startTime, result.Fetched, result.Cleanse.Kept)
	return nil
}

// printSummary выводит статистику и пути файлов в консоль
func (r *ETLRunner) printSummary(ctx context.Context, result *report.Result) {
	report.PrintSummary(r.out, result, r.config.Indicator)
}

// analyzeTrend строит тренд по очищенным данным. Это некритичный компонент:
// ошибка логируется, процесс продолжается.
func (r *ETLRunner) analyzeTrend(ctx context.Context, result *report.Result) {
	if _, err := r.runLinearRegression(result.Table); err != nil {
		r.logger.Warning("Тренд не построен: %v", err)
	}
}

// runLinearRegression запускает процесс линейной регрессии с параметрами из конфигурации
func (r *ETLRunner) runLinearRegression(table *models.ObservationTable) (*linear_regression.TrendReport, error) {
	processor := linear_regression.NewRegressionProcessor(r.logger, linear_regression.Config{
		ForecastYears:   r.config.ForecastYears,
		ConfidenceLevel: r.config.ConfidenceLevel,
		MinR2Threshold:  r.config.MinR2,
	})
	return processor.Process(table)
}

// ExecuteTrend извлекает и очищает данные, затем выводит только тренд и прогноз
func (r *ETLRunner) ExecuteTrend(ctx context.Context) error {
	raw, err := r.extractor.Extract(ctx, r.config.Country, r.config.StartYear, r.config.EndYear)
	if err != nil {
		r.logger.Error("Ошибка в фазе Extract: %v", err)
		return fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	table, _ := r.transformer.Transform(raw)

	trend, err := r.runLinearRegression(table)
	if err != nil {
		r.logger.Error("Ошибка при выполнении линейной регрессии: %v", err)
		return fmt.Errorf("ошибка при выполнении линейной регрессии: %w", err)
	}

	report.PrintTrend(r.out, trend)
	return nil
}

// updateETLRunLogSuccess обновляет запись в журнале ETL при успешном завершении
func (r *ETLRunner) updateETLRunLogSuccess(runLog *models.ETLRunLog, fetched, kept int) {
	runLog.EndTime = time.Now()
	runLog.Status = models.StatusSuccess
	runLog.ObservationsFetched = fetched
	runLog.ObservationsKept = kept

	if err := r.etlLogRepo.UpdateLogEntrySuccess(
		runLog.ID,
		runLog.EndTime,
		runLog.ObservationsFetched,
		runLog.ObservationsKept); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}
}

// updateETLRunLogFailure обновляет запись в журнале ETL при ошибке
func (r *ETLRunner) updateETLRunLogFailure(runLog *models.ETLRunLog, errorMessage string) {
	runLog.EndTime = time.Now()
	runLog.Status = models.StatusFailed
	runLog.ErrorMessage = errorMessage

	if err := r.etlLogRepo.UpdateLogEntryFailure(
		runLog.ID,
		runLog.EndTime,
		runLog.ErrorMessage); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}
}

// StartScheduler запускает планировщик для регулярного обновления данных.
// График в этом режиме не показывается.
func (r *ETLRunner) StartScheduler(ctx context.Context) error {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика ETL с интервалом %v", r.config.Interval)

	// Следующий запуск ждет завершения предыдущего
	_, err := scheduler.Every(r.config.Interval).SingletonMode().Do(func() {
		r.logger.Info("Запланированный запуск ETL процесса")
		if err := r.ExecuteETL(ctx, false); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного ETL: %v", err)
		}
	})
	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик ETL остановлен")
	return nil
}

// withRunner создает ETLRunner из флагов, передает его в fn и закрывает после завершения.
// Контекст отменяется по SIGINT/SIGTERM.
func withRunner(ctx *cli.Context, fn func(context.Context, *ETLRunner) error) error {
	runner, err := NewETLRunner(configFromContext(ctx))
	if err != nil {
		return err
	}
	defer runner.Close()

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fn(sigCtx, runner)
}

// RunOnce строит отчет один раз и показывает график
func RunOnce(ctx *cli.Context) error {
	return withRunner(ctx, func(ctx context.Context, r *ETLRunner) error {
		return r.ExecuteETL(ctx, true)
	})
}

// RunScheduled обновляет данные по расписанию до получения сигнала завершения
func RunScheduled(ctx *cli.Context) error {
	return withRunner(ctx, func(ctx context.Context, r *ETLRunner) error {
		return r.StartScheduler(ctx)
	})
}

// RunTrend выводит только тренд и прогноз
func RunTrend(ctx *cli.Context) error {
	return withRunner(ctx, func(ctx context.Context, r *ETLRunner) error {
		return r.ExecuteTrend(ctx)
	})
}

// newApp описывает приложение командной строки
func newApp() *cli.App {
	return &cli.App{
		Name:     "GDP Report",
		HelpName: "gdp-report",
		Usage:    "fetches a country's GDP series, saves it as CSV with statistics and shows a line chart",
		Flags:    commonFlags,
		Action:   RunOnce,
		Commands: []*cli.Command{
			{
				Name:   "once",
				Usage:  "build the report once and show the chart",
				Flags:  commonFlags,
				Action: RunOnce,
			},
			{
				Name:   "schedule",
				Usage:  "refresh the CSV files every --interval until interrupted",
				Flags:  commonFlags,
				Action: RunScheduled,
			},
			{
				Name:   "trend",
				Usage:  "print the linear trend and forecast",
				Flags:  commonFlags,
				Action: RunTrend,
			},
		},
		UseShortOptionHandling: true,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
