package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-WashScheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-WashScheduler/pkg/types"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date     string         `json:"date"`
	Timezone string         `json:"timezone"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse один слот сетки
type SlotResponse struct {
	Label        string `json:"label"`
	StartTime    string `json:"startTime"`
	StartsAt     string `json:"startsAt"`
	Available    bool   `json:"available"`
	PastCutoff   bool   `json:"pastCutoff"`
	BookingCount int    `json:"bookingCount"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{Date: date}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Label:        s.Label,
			StartTime:    s.StartTime,
			StartsAt:     s.StartsAt.Format(time.RFC3339),
			Available:    s.Available,
			PastCutoff:   s.PastCutoff,
			BookingCount: s.BookingCount,
		})
	}

	return &SlotsResponse{
		Date:     resp.Date.Format(types.DateLayout),
		Timezone: resp.Timezone,
		Slots:    slots,
	}
}
