// Package login реализует HTTP-обработчик входа пользователя.
//
// Вход не выдаёт ни токена, ни cookie: при совпадении пароля клиент получает
// публичные данные пользователя и хранит их у себя.
package login

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/agora/internal/http/response"
	"github.com/magabrotheeeer/agora/internal/lib/sl"
	"github.com/magabrotheeeer/agora/internal/services/auth"
)

// Request структура входных данных для входа.
type Request struct {
	Email    string `json:"email" validate:"required,nonul"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль. Токены не выдаются.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.UserResponse
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if !response.Bind(w, r, log, h.validate, &req) {
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			log.Info("invalid credentials")
			response.Error(w, r, http.StatusUnauthorized, response.MsgInvalidCredentials)
			return
		}
		log.Error("login failed", sl.Err(err))
		response.Internal(w, r)
		return
	}

	log.Info("login success", slog.Int64("user_id", user.ID))
	response.JSON(w, r, http.StatusOK, response.UserResponse{User: user.Public()})
}
