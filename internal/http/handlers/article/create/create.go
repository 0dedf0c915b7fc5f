// Package create реализует HTTP-обработчик публикации статьи.
package create

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/agora/internal/http/response"
	"github.com/magabrotheeeer/agora/internal/lib/sl"
	"github.com/magabrotheeeer/agora/internal/models"
)

// Request данные новой статьи. Дату задаёт сервер, поле date из запроса игнорируется.
type Request struct {
	Title     string          `json:"title" validate:"required,nonul,max=200"`
	Excerpt   string          `json:"excerpt" validate:"required,nonul,max=500"`
	Content   string          `json:"content" validate:"required,nonul"`
	Category  string          `json:"category" validate:"required,nonul,max=50"`
	Access    string          `json:"access" validate:"required,nonul,max=20"`
	Author    string          `json:"author" validate:"required,nonul,max=100"`
	ChartData json.RawMessage `json:"chartData" swaggertype:"object"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Публикация статьи
// @Description Создаёт статью с текущей датой сервера. chartData необязателен.
// @Tags Articles
// @Accept json
// @Produce json
// @Param request body Request true "Данные статьи"
// @Success 201 {object} models.Article
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Router /articles [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.create"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if !response.Bind(w, r, log, h.validate, &req) {
		return
	}

	article, err := h.service.Create(r.Context(), models.NewArticle{
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Category:  req.Category,
		Access:    req.Access,
		Author:    req.Author,
		ChartData: req.ChartData,
	})
	if err != nil {
		log.Error("failed to create article", sl.Err(err))
		response.Internal(w, r)
		return
	}

	response.JSON(w, r, http.StatusCreated, article)
}
