package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	getAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	LotID       uuid.UUID `json:"lotId"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Slots       []string  `json:"slots"`
	Count       int       `json:"count"`
	Synthesized bool      `json:"synthesized"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []string{}
	}

	return &AvailableSlotsResponse{
		LotID:       resp.LotID,
		StartTime:   resp.StartTime.Format(time.RFC3339),
		EndTime:     resp.EndTime.Format(time.RFC3339),
		Slots:       slots,
		Count:       len(slots),
		Synthesized: resp.Synthesized,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров в формате RFC3339
func ToUseCaseRequest(lotID uuid.UUID, startStr, endStr string) (*getAvailableSlots.Request, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		LotID:     lotID,
		StartTime: start,
		EndTime:   end,
	}, nil
}
