// Package subscribe реализует HTTP-обработчик подписки на рассылку.
package subscribe

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/agora/internal/http/response"
	"github.com/magabrotheeeer/agora/internal/lib/sl"
)

// Сообщения ответа на подписку.
const (
	MsgSubscribed        = "Subscribed"
	MsgAlreadySubscribed = "Already subscribed"
)

// Request email для подписки
type Request struct {
	Email string `json:"email" validate:"required,nonul,max=120"`
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
// @Summary Подписка на рассылку
// @Description Повторная подписка того же email не является ошибкой
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body Request true "Email подписчика"
// @Success 201 {object} response.MessageResponse "Subscribed"
// @Success 200 {object} response.MessageResponse "Already subscribed"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Router /newsletter/subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.subscribe"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if !response.Bind(w, r, log, h.validate, &req) {
		return
	}

	created, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		log.Error("failed to subscribe", sl.Err(err))
		response.Internal(w, r)
		return
	}
	if !created {
		response.Message(w, r, http.StatusOK, MsgAlreadySubscribed)
		return
	}

	log.Info("new subscriber")
	response.Message(w, r, http.StatusCreated, MsgSubscribed)
}
