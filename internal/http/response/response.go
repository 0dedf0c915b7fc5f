// Package response содержит типы JSON‑ответов HTTP‑обработчиков Agora
// и функции для их отправки. Формат ответов фиксирован клиентом:
// ошибки {"error": ...}, сообщения {"message": ...}.
package response

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/agora/internal/models"
)

// Тексты ошибок, которые видит клиент.
const (
	MsgInvalidBody        = "invalid request body"
	MsgValidationFailed   = "validation failed"
	MsgInternal           = "internal server error"
	MsgEmailExists        = "Email exists"
	MsgInvalidCredentials = "Invalid credentials"
)

// ErrorResponse описывает ответ с ошибкой.
// Fields заполняется только для ошибок валидации.
type ErrorResponse struct {
	Error  string       `json:"error" example:"Email exists"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError описывает одно нарушение валидации.
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"email is a required field"`
}

// MessageResponse ответ с текстовым сообщением.
type MessageResponse struct {
	Message string `json:"message" example:"Subscribed"`
}

// UserResponse ответ с публичными данными пользователя.
type UserResponse struct {
	User models.PublicUser `json:"user"`
}

// HealthResponse ответ проверки здоровья.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Agora API is running"`
}

// JSON отправляет v со статусом status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Error отправляет ErrorResponse с сообщением msg.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, ErrorResponse{Error: msg})
}

// Internal отправляет 500 без подробностей, они остаются в логе.
func Internal(w http.ResponseWriter, r *http.Request) {
	Error(w, r, http.StatusInternalServerError, MsgInternal)
}

// Message отправляет MessageResponse.
func Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, MessageResponse{Message: msg})
}

// Дополнительные теги валидации.
const (
	// TagMaxBytes ограничивает длину строки в байтах, а не в символах (bcrypt режет по 72 байта).
	TagMaxBytes = "maxbytes"
	// TagNoNUL запрещает символ U+0000, его не принимают текстовые колонки PostgreSQL.
	TagNoNUL = "nonul"
)

// NewValidator создаёт валидатор, который называет поля по их json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, TagMaxBytes, validateMaxBytes)
	mustRegister(v, TagNoNUL, validateNoNUL)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %s", tag, err))
	}
}

func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func validateNoNUL(fl validator.FieldLevel) bool {
	return !strings.ContainsRune(fl.Field().String(), 0)
}

// ValidationError формирует ErrorResponse, перечисляющий все нарушения.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	fields := make([]FieldError, 0, len(errs))

	for _, err := range errs {
		var msg string
		switch err.ActualTag() {
		case "required":
			msg = fmt.Sprintf("%s is a required field", err.Field())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters long", err.Field(), err.Param())
		case TagMaxBytes:
			msg = fmt.Sprintf("%s must be at most %s bytes long", err.Field(), err.Param())
		case TagNoNUL:
			msg = fmt.Sprintf("%s must not contain NUL characters", err.Field())
		default:
			msg = fmt.Sprintf("%s is not valid", err.Field())
		}
		fields = append(fields, FieldError{Field: err.Field(), Message: msg})
	}
	return ErrorResponse{
		Error:  MsgValidationFailed,
		Fields: fields,
	}
}
