package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgUnauthorized  = "требуется аутентификация"
	msgBadGateway    = "внешний сервис недоступен"
)

// ErrEmptyBody тело запроса отсутствует
var ErrEmptyBody = errors.New("request body is empty")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку с указанным кодом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondValidationError 400 с перечнем полей, не прошедших валидацию
func RespondValidationError(w http.ResponseWriter, message string, err error) {
	resp := ErrorResponse{Error: message}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.Details = append(resp.Details, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}

	RespondJSON(w, http.StatusBadRequest, resp)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, msgUnauthorized)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondBadGateway 502
func RespondBadGateway(w http.ResponseWriter) {
	RespondError(w, http.StatusBadGateway, msgBadGateway)
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// UUIDVar извлекает UUID из переменной пути
func UUIDVar(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(mux.Vars(r)[name])
	if raw == "" {
		return uuid.Nil, fmt.Errorf("path variable %s is missing", name)
	}
	return uuid.Parse(raw)
}
