// Package signup реализует HTTP-обработчик регистрации пользователя.
package signup

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

// Request входные данные для регистрации
type Request struct {
	Name     string `json:"name" validate:"required,nonul,max=100"`
	Email    string `json:"email" validate:"required,nonul,max=120"`
	Password string `json:"password" validate:"required,maxbytes=72"`
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
// @Summary Регистрация пользователя
// @Description Создаёт пользователя. Пароль хранится только в виде bcrypt-хэша.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Имя, email и пароль"
// @Success 201 {object} response.UserResponse
// @Failure 400 {object} response.ErrorResponse "Email уже зарегистрирован или некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if !response.Bind(w, r, log, h.validate, &req) {
		return
	}

	user, err := h.service.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrConflict) {
			log.Info("email already registered")
			response.Error(w, r, http.StatusBadRequest, response.MsgEmailExists)
			return
		}
		log.Error("signup failed", sl.Err(err))
		response.Internal(w, r)
		return
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	response.JSON(w, r, http.StatusCreated, response.UserResponse{User: user.Public()})
}
