package pay_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments"
)

const (
	msgInvalidOrderID    = "некорректный ID заказа"
	msgForbidden         = "доступ запрещен"
	msgOrderNotFound     = "платёжный заказ не найден"
	msgBookingNotFound   = "бронирование не найдено"
	msgBookingNotPending = "бронирование не ожидает оплаты"
)

// RespondPaymentError отображает ошибку платёжного сервиса на HTTP ответ.
// Возвращает true, если ошибка внутренняя или ошибка шлюза
func RespondPaymentError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, payments.ErrUnauthorized):
		handlers.RespondUnauthorized(w)
	case errors.Is(err, payments.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, payments.ErrOrderNotFound):
		handlers.RespondNotFound(w, msgOrderNotFound)
	case errors.Is(err, payments.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, payments.ErrBookingNotPending):
		handlers.RespondConflict(w, msgBookingNotPending)
	case errors.Is(err, payments.ErrGateway):
		handlers.RespondBadGateway(w)
		return true
	default:
		handlers.RespondInternalError(w)
		return true
	}
	return false
}
