// Package subscribers реализует HTTP-обработчик выдачи подписчиков рассылки.
package subscribers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/agora/internal/http/response"
	"github.com/magabrotheeeer/agora/internal/lib/sl"
	"github.com/magabrotheeeer/agora/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список подписчиков
// @Description Возвращает email всех подписчиков в порядке подписки
// @Tags Newsletter
// @Produce json
// @Success 200 {array} models.Subscriber
// @Failure 500 {object} response.ErrorResponse
// @Router /newsletter/subscribers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.subscribers"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		response.Internal(w, r)
		return
	}
	if subs == nil {
		subs = []*models.Subscriber{}
	}

	response.JSON(w, r, http.StatusOK, subs)
}
