package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// resolveWindow вычисляет [start, end) и длительность в часах.
// Если заданы и EndTime, и DurationHours, они должны совпадать
func resolveWindow(req *Request, now time.Time, maxHours int) (*window, error) {
	if req.LotID == uuid.Nil {
		return nil, fmt.Errorf("%w: lotId is required", ErrInvalidInput)
	}

	start := ptr.Deref(req.StartTime, now)

	var (
		end      time.Time
		duration int
	)

	switch {
	case req.EndTime != nil:
		end = *req.EndTime
		if !end.After(start) {
			return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidTimeRange)
		}
		duration = domain.DurationHours(start, end)
		if req.DurationHours != nil && !start.Add(time.Duration(*req.DurationHours)*time.Hour).Equal(end) {
			return nil, fmt.Errorf("%w: endTime and durationHours disagree", ErrInvalidTimeRange)
		}
	case req.DurationHours != nil:
		duration = *req.DurationHours
		end = start.Add(time.Duration(duration) * time.Hour)
	default:
		duration = domain.DefaultDurationHours
		end = start.Add(time.Duration(duration) * time.Hour)
	}

	if duration < 1 || duration > maxHours {
		return nil, fmt.Errorf("%w: duration must be between 1 and %d hours", ErrInvalidTimeRange, maxHours)
	}
	if !end.After(now) {
		return nil, fmt.Errorf("%w: booking window is in the past", ErrInvalidTimeRange)
	}

	return &window{start: start, end: end, duration: duration}, nil
}

// normalizeSlotKey пустой ключ означает автоподбор
func normalizeSlotKey(key *string) *string {
	if key == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*key)
	if trimmed == "" {
		return nil
	}
	return ptr.Ptr(trimmed)
}

func validateWalkIn(req *WalkInRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}
	return nil
}
