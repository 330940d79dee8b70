package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы запуска ETL
const (
	StatusInProgress = "in_progress"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

// ETLRunLog представляет запись о запуске ETL процесса
type ETLRunLog struct {
	ID                   int       `json:"id"`
	RunID                string    `json:"run_id"`
	Country              string    `json:"country"`
	Indicator            string    `json:"indicator"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	ObservationsFetched  int       `json:"observations_fetched"`
	ObservationsKept     int       `json:"observations_kept"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// NewETLRunLog создает запись о новом запуске с уникальным RunID
func NewETLRunLog(country, indicator string, startTime time.Time) *ETLRunLog {
	return &ETLRunLog{
		RunID:     uuid.NewString(),
		Country:   country,
		Indicator: indicator,
		StartTime: startTime,
		Status:    StatusInProgress,
	}
}

// ETLLogRepository представляет репозиторий для работы с журналом запусков
type ETLLogRepository interface {
	// CreateETLLogTable создает таблицу журнала, если она не существует
	CreateETLLogTable() error

	// CreateLogEntry создает новую запись о запуске ETL и возвращает ее ID
	CreateLogEntry(runLog *ETLRunLog) (int, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
	UpdateLogEntrySuccess(id int, endTime time.Time, fetched, kept int) error

	// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
	UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error

	// GetLastSuccessfulRun получает последний успешный запуск для страны и показателя
	GetLastSuccessfulRun(country, indicator string) (*ETLRunLog, error)
}

// NopETLLogRepository журнал-заглушка, используется когда база данных не настроена
type NopETLLogRepository struct{}

func (NopETLLogRepository) CreateETLLogTable() error { return nil }
func (NopETLLogRepository) CreateLogEntry(*ETLRunLog) (int, error) { return 0, nil }
func (NopETLLogRepository) UpdateLogEntrySuccess(int, time.Time, int, int) error { return nil }
func (NopETLLogRepository) UpdateLogEntryFailure(int, time.Time, string) error { return nil }
func (NopETLLogRepository) GetLastSuccessfulRun(string, string) (*ETLRunLog, error) {
	return nil, nil
}
