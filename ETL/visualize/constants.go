package visualize

import (
	"time"
)

// Константы для WebSocket-соединения сессии просмотра
const (
	// Время ожидания записи сообщения клиенту
	writeWait = 10 * time.Second

	// Время ожидания сообщения от клиента
	pongWait = 60 * time.Second

	// Период отправки пинг-сообщений
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер сообщения от страницы
	maxMessageSize = 4 * 1024

	// Сколько ждать повторного подключения страницы (например, после перезагрузки)
	// прежде чем считать просмотр завершенным
	defaultReconnectGrace = 3 * time.Second

	// Таймаут корректной остановки HTTP-сервера
	shutdownTimeout = 5 * time.Second
)
