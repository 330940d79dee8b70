package visualize

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LilVoxy/gdp_report/ETL/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// session одно открытое окно просмотра графика
type session struct {
	conn      *websocket.Conn
	done      chan struct{}
	closeOnce sync.Once
}

// hub отслеживает открытые сессии просмотра и определяет момент завершения просмотра
type hub struct {
	register   chan *session
	unregister chan *session
	sessions   map[*session]struct{}

	dismissed   chan struct{}
	dismissOnce sync.Once
	stopped     chan struct{}

	grace  time.Duration
	logger *utils.ETLLogger
}

func newHub(grace time.Duration, logger *utils.ETLLogger) *hub {
	return &hub{
		register:   make(chan *session),
		unregister: make(chan *session),
		sessions:   make(map[*session]struct{}),
		dismissed:  make(chan struct{}),
		stopped:    make(chan struct{}),
		grace:      grace,
		logger:     logger,
	}
}

// dismiss отмечает просмотр завершенным, повторные вызовы игнорируются
func (h *hub) dismiss(reason string) {
	h.dismissOnce.Do(func() {
		h.logger.Info("Просмотр графика завершен: %s", reason)
		close(h.dismissed)
	})
}

// run обрабатывает подключения и отключения сессий до завершения просмотра или отмены ctx.
// При выходе закрывает все оставшиеся соединения.
func (h *hub) run(ctx context.Context) {
	var timer *time.Timer
	var graceC <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		for s := range h.sessions {
			s.close()
		}
		close(h.stopped)
	}()

	for {
		select {
		case s := <-h.register:
			h.sessions[s] = struct{}{}
			if timer != nil {
				timer.Stop()
				timer, graceC = nil, nil
			}
			h.logger.Debug("Открыта сессия просмотра, всего %d", len(h.sessions))

		case s := <-h.unregister:
			delete(h.sessions, s)
			h.logger.Debug("Закрыта сессия просмотра, осталось %d", len(h.sessions))
			if len(h.sessions) == 0 {
				timer = time.NewTimer(h.grace)
				graceC = timer.C
			}

		case <-graceC:
			h.dismiss("окно просмотра закрыто")
			return

		case <-h.dismissed:
			return

		case <-ctx.Done():
			return
		}
	}
}

// serveSession переводит запрос в WebSocket и держит сессию до отключения страницы
func (h *hub) serveSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Ошибка при открытии сессии просмотра: %v", err)
		return
	}

	s := &session{conn: conn, done: make(chan struct{})}
	select {
	case h.register <- s:
	case <-h.stopped:
		s.close()
		return
	}

	go s.writePump()
	s.readPump()

	select {
	case h.unregister <- s:
	case <-h.stopped:
	}
}

// readPump читает сообщения страницы до ошибки или закрытия соединения
func (s *session) readPump() {
	defer s.close()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump периодически отправляет ping, чтобы обнаружить закрытую вкладку
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// close закрывает соединение, безопасно для повторного вызова
func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "viewer dismissed")
		s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		s.conn.Close()
	})
}
