package models

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLETLLogRepository реализация ETLLogRepository для MySQL
type MySQLETLLogRepository struct {
	db *sql.DB
}

// NewMySQLETLLogRepository создает новый экземпляр MySQLETLLogRepository
func NewMySQLETLLogRepository(db *sql.DB) *MySQLETLLogRepository {
	return &MySQLETLLogRepository{
		db: db,
	}
}

// CreateETLLogTable создает таблицу для логирования ETL процесса, если она не существует
func (r *MySQLETLLogRepository) CreateETLLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS etl_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		run_id CHAR(36) NOT NULL,
		country VARCHAR(8) NOT NULL,
		indicator VARCHAR(64) NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		observations_fetched INT DEFAULT 0,
		observations_kept INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT,
		INDEX idx_country_indicator (country, indicator)
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске ETL
func (r *MySQLETLLogRepository) CreateLogEntry(runLog *ETLRunLog) (int, error) {
	query := `
	INSERT INTO etl_run_log (run_id, country, indicator, start_time, status)
	VALUES (?, ?, ?, ?, 'in_progress')
	`

	result, err := r.db.Exec(query, runLog.RunID, runLog.Country, runLog.Indicator, runLog.StartTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске ETL: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntrySuccess(id int, endTime time.Time, fetched, kept int) error {
	executionTime, err := r.executionTime(id, endTime)
	if err != nil {
		return err
	}

	query := `
	UPDATE etl_run_log
	SET
		end_time = ?,
		status = 'success',
		observations_fetched = ?,
		observations_kept = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	if _, err := r.db.Exec(query, endTime, fetched, kept, executionTime, id); err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	executionTime, err := r.executionTime(id, endTime)
	if err != nil {
		return err
	}

	query := `
	UPDATE etl_run_log
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	if _, err := r.db.Exec(query, endTime, errorMessage, executionTime, id); err != nil {
		return fmt.Errorf("ошибка при обновлении записи о неудачном запуске ETL: %w", err)
	}

	return nil
}

// executionTime рассчитывает время выполнения в секундах по времени начала из журнала
func (r *MySQLETLLogRepository) executionTime(id int, endTime time.Time) (float64, error) {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM etl_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}
	return endTime.Sub(startTime).Seconds(), nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL
func (r *MySQLETLLogRepository) GetLastSuccessfulRun(country, indicator string) (*ETLRunLog, error) {
	query := `
	SELECT
		id, run_id, country, indicator, start_time, end_time, status,
		observations_fetched, observations_kept,
		IFNULL(error_message, ''), execution_time_seconds
	FROM etl_run_log
	WHERE status = 'success' AND country = ? AND indicator = ?
	ORDER BY end_time DESC
	LIMIT 1
	`

	var log ETLRunLog
	err := r.db.QueryRow(query, country, indicator).Scan(
		&log.ID, &log.RunID, &log.Country, &log.Indicator, &log.StartTime, &log.EndTime, &log.Status,
		&log.ObservationsFetched, &log.ObservationsKept,
		&log.ErrorMessage, &log.ExecutionTimeSeconds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Нет успешных запусков
		}
		return nil, fmt.Errorf("ошибка при получении информации о последнем успешном запуске ETL: %w", err)
	}

	return &log, nil
}
