package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные бронирования"
	msgForbidden          = "доступ запрещен"
	msgLotNotFound        = "парковка не найдена"
	msgSlotNotDefined     = "такого места нет на парковке"
	msgSlotUnavailable    = "выбранное место занято на это время"
	msgLotFull            = "на выбранное время свободных мест нет"
	msgConcurrentModified = "место только что заняли, повторите попытку"
	msgInvalidTimeRange   = "некорректный интервал бронирования"
)

// RespondUseCaseError отображает ошибку use case на HTTP ответ.
// Возвращает true, если ошибка внутренняя
func RespondUseCaseError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, createBooking.ErrUnauthorized):
		handlers.RespondUnauthorized(w)
	case errors.Is(err, createBooking.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, createBooking.ErrLotNotFound):
		handlers.RespondNotFound(w, msgLotNotFound)
	case errors.Is(err, createBooking.ErrSlotNotDefined):
		handlers.RespondBadRequest(w, msgSlotNotDefined)
	case errors.Is(err, createBooking.ErrSlotUnavailable):
		handlers.RespondConflict(w, msgSlotUnavailable)
	case errors.Is(err, createBooking.ErrLotFull):
		handlers.RespondConflict(w, msgLotFull)
	case errors.Is(err, createBooking.ErrConcurrentModification):
		handlers.RespondConflict(w, msgConcurrentModified)
	case errors.Is(err, createBooking.ErrInvalidTimeRange):
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
	case errors.Is(err, createBooking.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgValidationFailed)
	default:
		handlers.RespondInternalError(w)
		return true
	}
	return false
}
