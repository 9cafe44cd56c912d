package get_lot_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров.
// from и to ожидаются в RFC3339
func ToServiceRequest(lotID uuid.UUID, query url.Values) (*models.GetLotBookingsRequest, error) {
	req := &models.GetLotBookingsRequest{LotID: lotID}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("parse from: %w", err)
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("parse to: %w", err)
		}
		req.To = &to
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse includeInactive: %w", err)
		}
		req.IncludeInactive = include
	}

	return req, nil
}
