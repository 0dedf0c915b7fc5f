package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/agora/internal/lib/sl"
)

// Bind декодирует JSON тела запроса в dst и проверяет его валидатором.
// При ошибке Bind сам отправляет ответ (400 или 422) и возвращает false.
// Поле неверного типа считается ошибкой валидации, а не нечитаемым телом.
func Bind(w http.ResponseWriter, r *http.Request, log *slog.Logger, validate *validator.Validate, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			JSON(w, r, http.StatusUnprocessableEntity, TypeError(typeErr))
			return false
		}
		Error(w, r, http.StatusBadRequest, MsgInvalidBody)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var validateErr validator.ValidationErrors
		if !errors.As(err, &validateErr) {
			log.Error("failed to validate request", sl.Err(err))
			Error(w, r, http.StatusBadRequest, MsgInvalidBody)
			return false
		}
		log.Info("invalid request", sl.Err(err))
		JSON(w, r, http.StatusUnprocessableEntity, ValidationError(validateErr))
		return false
	}
	return true
}

// TypeError формирует ErrorResponse для поля, значение которого имеет неверный JSON-тип.
func TypeError(err *json.UnmarshalTypeError) ErrorResponse {
	return ErrorResponse{
		Error: MsgValidationFailed,
		Fields: []FieldError{{
			Field:   err.Field,
			Message: fmt.Sprintf("%s must be of type %s", err.Field, err.Type),
		}},
	}
}
