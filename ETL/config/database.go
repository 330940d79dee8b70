package config

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// journalDSN разбирает DSN журнала и включает parseTime,
// чтобы столбцы TIMESTAMP читались как time.Time
func journalDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("некорректный DSN журнала: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// ConnectJournal устанавливает подключение к базе данных журнала запусков
func ConnectJournal(dsn string) (*sql.DB, error) {
	dsn, err := journalDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных журнала: %w", err)
	}

	// Журналу достаточно нескольких соединений
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось установить соединение с базой данных журнала: %w", err)
	}

	return db, nil
}

// CloseJournal закрывает подключение к базе данных журнала
func CloseJournal(db *sql.DB) error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("ошибка при закрытии соединения с базой данных журнала: %w", err)
	}
	return nil
}
