// Package list реализует HTTP-обработчик выдачи всех статей.
package list

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
// @Summary Список статей
// @Description Возвращает все статьи, новые первыми
// @Tags Articles
// @Produce json
// @Success 200 {array} models.Article
// @Failure 500 {object} response.ErrorResponse
// @Router /articles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.list"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	articles, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list articles", sl.Err(err))
		response.Internal(w, r)
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	log.Debug("articles listed", slog.Int("count", len(articles)))
	response.JSON(w, r, http.StatusOK, articles)
}
