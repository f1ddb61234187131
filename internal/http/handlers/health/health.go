// Package health реализует маршрут проверки живости сервиса.
package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
)

// Pinger проверяет доступность хранилища данных.
type Pinger interface {
	Ping() error
}

// Response — ответ проверки живости.
type Response struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// New возвращает обработчик проверки живости сервиса и базы данных.
func New(log *slog.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "up"
		if err := db.Ping(); err != nil {
			log.Error("database ping failed", sl.Err(err))
			dbStatus = "down"
			render.Status(r, http.StatusServiceUnavailable)
		}
		render.JSON(w, r, Response{
			Status:    "ok",
			Database:  dbStatus,
			Timestamp: time.Now().UTC(),
		})
	}
}
