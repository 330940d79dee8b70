package main

import (
	"github.com/urfave/cli/v2"

	"github.com/LilVoxy/gdp_report/ETL/config"
)

// Флаги командной строки. Каждый флаг также читается из переменной окружения GDP_REPORT_*.
var (
	CountryFlag = cli.StringFlag{
		Name:    "country",
		Aliases: []string{"c"},
		Usage:   "код страны (ISO2 или ISO3)",
		Value:   config.DefaultReportConfig.Country,
		EnvVars: []string{"GDP_REPORT_COUNTRY"},
	}
	StartYearFlag = cli.IntFlag{
		Name:    "start",
		Usage:   "первый год диапазона",
		Value:   config.DefaultReportConfig.StartYear,
		EnvVars: []string{"GDP_REPORT_START"},
	}
	EndYearFlag = cli.IntFlag{
		Name:    "end",
		Usage:   "последний год диапазона (включительно)",
		Value:   config.DefaultReportConfig.EndYear,
		EnvVars: []string{"GDP_REPORT_END"},
	}
	OutputDirFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "каталог для CSV-файлов",
		Value:   config.DefaultReportConfig.OutputDir,
		EnvVars: []string{"GDP_REPORT_OUTPUT"},
	}
	BaseURLFlag = cli.StringFlag{
		Name:    "base-url",
		Usage:   "адрес API показателей",
		Value:   config.DefaultReportConfig.BaseURL,
		EnvVars: []string{"GDP_REPORT_BASE_URL"},
	}
	TimeoutFlag = cli.DurationFlag{
		Name:    "timeout",
		Usage:   "таймаут запроса к API, 0 отключает",
		Value:   config.DefaultReportConfig.Timeout,
		EnvVars: []string{"GDP_REPORT_TIMEOUT"},
	}
	ViewerAddrFlag = cli.StringFlag{
		Name:    "viewer-addr",
		Usage:   "адрес локального сервера с графиком",
		Value:   config.DefaultReportConfig.ViewerAddr,
		EnvVars: []string{"GDP_REPORT_VIEWER_ADDR"},
	}
	NoViewerFlag = cli.BoolFlag{
		Name:    "no-viewer",
		Usage:   "не показывать график",
		EnvVars: []string{"GDP_REPORT_NO_VIEWER"},
	}
	IntervalFlag = cli.DurationFlag{
		Name:    "interval",
		Usage:   "интервал обновления в режиме schedule",
		Value:   config.DefaultReportConfig.Interval,
		EnvVars: []string{"GDP_REPORT_INTERVAL"},
	}
	ForecastFlag = cli.IntFlag{
		Name:    "forecast",
		Usage:   "количество лет для прогноза",
		Value:   config.DefaultReportConfig.ForecastYears,
		EnvVars: []string{"GDP_REPORT_FORECAST"},
	}
	ConfidenceFlag = cli.Float64Flag{
		Name:    "confidence",
		Usage:   "уровень доверия прогноза (0.90, 0.95, 0.99)",
		Value:   config.DefaultReportConfig.ConfidenceLevel,
		EnvVars: []string{"GDP_REPORT_CONFIDENCE"},
	}
	MinR2Flag = cli.Float64Flag{
		Name:    "min-r2",
		Usage:   "минимальный порог R² для значимой модели",
		Value:   config.DefaultReportConfig.MinR2,
		EnvVars: []string{"GDP_REPORT_MIN_R2"},
	}
	MySQLDSNFlag = cli.StringFlag{
		Name:    "mysql-dsn",
		Usage:   "DSN MySQL для журнала запусков (пусто отключает журнал)",
		EnvVars: []string{"GDP_REPORT_MYSQL_DSN"},
	}
	LogLevelFlag = cli.StringFlag{
		Name:    "log",
		Aliases: []string{"l"},
		Usage:   "уровень логирования (critical, error, warning, notice, info, debug)",
		Value:   config.DefaultReportConfig.LogLevel,
		EnvVars: []string{"GDP_REPORT_LOG"},
	}
	LogDirFlag = cli.StringFlag{
		Name:    "log-dir",
		Usage:   "каталог для файлов лога",
		Value:   config.DefaultReportConfig.LogDir,
		EnvVars: []string{"GDP_REPORT_LOG_DIR"},
	}
)

// commonFlags флаги, общие для всех команд
var commonFlags = []cli.Flag{
	&CountryFlag,
	&StartYearFlag,
	&EndYearFlag,
	&OutputDirFlag,
	&BaseURLFlag,
	&TimeoutFlag,
	&ViewerAddrFlag,
	&NoViewerFlag,
	&IntervalFlag,
	&ForecastFlag,
	&ConfidenceFlag,
	&MinR2Flag,
	&MySQLDSNFlag,
	&LogLevelFlag,
	&LogDirFlag,
}

// configFromContext собирает конфигурацию из флагов и переменных окружения
func configFromContext(ctx *cli.Context) config.ReportConfig {
	cfg := config.GetConfig()
	cfg.Country = ctx.String(CountryFlag.Name)
	cfg.StartYear = ctx.Int(StartYearFlag.Name)
	cfg.EndYear = ctx.Int(EndYearFlag.Name)
	cfg.OutputDir = ctx.String(OutputDirFlag.Name)
	cfg.BaseURL = ctx.String(BaseURLFlag.Name)
	cfg.Timeout = ctx.Duration(TimeoutFlag.Name)
	cfg.ViewerAddr = ctx.String(ViewerAddrFlag.Name)
	cfg.NoViewer = ctx.Bool(NoViewerFlag.Name)
	cfg.Interval = ctx.Duration(IntervalFlag.Name)
	cfg.ForecastYears = ctx.Int(ForecastFlag.Name)
	cfg.ConfidenceLevel = ctx.Float64(ConfidenceFlag.Name)
	cfg.MinR2 = ctx.Float64(MinR2Flag.Name)
	cfg.MySQLDSN = ctx.String(MySQLDSNFlag.Name)
	cfg.LogLevel = ctx.String(LogLevelFlag.Name)
	cfg.LogDir = ctx.String(LogDirFlag.Name)
	return cfg
}

