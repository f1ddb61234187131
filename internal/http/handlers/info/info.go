// Package info реализует корневой маршрут API с перечнем конечных точек.
package info

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response — приветственный ответ корневого маршрута.
type Response struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// New возвращает обработчик корневого маршрута API.
func New(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, Response{
			Message: "Welcome to FitPlanHub API",
			Version: version,
			Endpoints: map[string]string{
				"auth":          "/api/auth",
				"plans":         "/api/plans",
				"subscriptions": "/api/subscriptions",
				"follow":        "/api/follow",
				"feed":          "/api/feed",
				"trainers":      "/api/trainers",
			},
		})
	}
}
