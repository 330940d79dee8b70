package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/op/go-logging"
)

// logFormat формат строк лога
const logFormat = "%{time:2006/01/02 15:04:05} %{level:-8s} %{module}: %{message}"

// ETLLogger представляет логгер для ETL-процесса
type ETLLogger struct {
	logger *logging.Logger
	file   *os.File
}

// NewETLLogger создает логгер, пишущий в стандартный вывод и в файл etl_log_<дата>.log
// в каталоге logDir. Уровень задается строкой ("critical", "error", "warning", "notice", "info", "debug").
func NewETLLogger(level string, logDir string) (*ETLLogger, error) {
	// Создаем или открываем лог-файл для записи
	currentTime := time.Now().Format("2006-01-02")
	logFileName := filepath.Join(logDir, fmt.Sprintf("etl_log_%s.log", currentTime))

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть или создать файл лога: %w", err)
	}

	l := NewETLLoggerWithWriter(level, io.MultiWriter(os.Stdout, file))
	l.file = file
	return l, nil
}

// NewETLLoggerWithWriter создает логгер, пишущий в указанный writer
func NewETLLoggerWithWriter(level string, w io.Writer) *ETLLogger {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(logFormat))

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")

	logger := logging.MustGetLogger("gdp-report")
	logger.SetBackend(leveled)

	return &ETLLogger{logger: logger}
}

// Close закрывает файл лога
func (l *ETLLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Info логирует информационное сообщение
func (l *ETLLogger) Info(format string, v ...interface{}) {
	l.logger.Infof(format, v...)
}

// Warning логирует предупреждение
func (l *ETLLogger) Warning(format string, v ...interface{}) {
	l.logger.Warningf(format, v...)
}

// Error логирует сообщение об ошибке
func (l *ETLLogger) Error(format string, v ...interface{}) {
	l.logger.Errorf(format, v...)
}

// Debug логирует отладочное сообщение (выводится только на уровне debug)
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	l.logger.Debugf(format, v...)
}

// LogETLStart логирует начало ETL-процесса
func (l *ETLLogger) LogETLStart(country string, startYear, endYear int) {
	l.Info("Начало выполнения ETL-процесса для %s за %d-%d", country, startYear, endYear)
}

// LogETLComplete логирует завершение ETL-процесса
func (l *ETLLogger) LogETLComplete(startTime time.Time, fetched, kept int) {
	l.Info("ETL-процесс завершён. Длительность: %v", time.Since(startTime))
	l.Info("Обработано: получено %d записей, сохранено %d", fetched, kept)
}

// LogExtractStart логирует начало фазы извлечения данных
func (l *ETLLogger) LogExtractStart() {
	l.Info("Начало фазы Extract (Извлечение данных)")
}

// LogExtractComplete логирует завершение фазы извлечения данных
func (l *ETLLogger) LogExtractComplete(observations int, duration time.Duration) {
	l.Info("Фаза Extract завершена. Длительность: %v", duration)
	l.Info("Извлечено: %d записей", observations)
}
