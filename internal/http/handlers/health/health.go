// Package health реализует проверку доступности API.
package health

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/agora/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Проверка доступности
// @Tags System
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, response.HealthResponse{
		Status:  "ok",
		Message: "Agora API is running",
	})
}
