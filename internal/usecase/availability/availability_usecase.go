package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gdugdh24/sparring-backend/internal/repository"
)

// TimeLayout is the wall-clock format of slot boundaries.
const TimeLayout = "15:04"

// AddSlotRequest represents a new weekly availability window
type AddSlotRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

type AvailabilityUseCase struct {
	availabilityRepo repository.AvailabilityRepository
}

func NewAvailabilityUseCase(availabilityRepo repository.AvailabilityRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{availabilityRepo: availabilityRepo}
}

// IsClockTime reports whether s is a zero-padded 24h "HH:MM" time.
func IsClockTime(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

func (uc *AvailabilityUseCase) ListSlots(ctx context.Context, userID string) ([]*domain.AvailabilitySlot, error) {
	slots, err := uc.availabilityRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	if slots == nil {
		slots = []*domain.AvailabilitySlot{}
	}
	return slots, nil
}

func (uc *AvailabilityUseCase) AddSlot(ctx context.Context, userID string, req *AddSlotRequest) (*domain.AvailabilitySlot, error) {
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: day_of_week must be between 0 and 6", domain.ErrInvalidInput)
	}
	if !IsClockTime(req.StartTime) || !IsClockTime(req.EndTime) {
		return nil, fmt.Errorf("%w: times must be HH:MM", domain.ErrInvalidInput)
	}
	// Zero-padded HH:MM strings order the same way as the times they encode.
	if req.EndTime <= req.StartTime {
		return nil, fmt.Errorf("%w: end_time must be after start_time", domain.ErrInvalidInput)
	}

	slot := &domain.AvailabilitySlot{
		UserID:    userID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := uc.availabilityRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to add slot: %w", err)
	}
	return slot, nil
}

// DeleteSlot removes one of the user's slots. Slots owned by someone else
// are reported as domain.ErrSlotNotFound.
func (uc *AvailabilityUseCase) DeleteSlot(ctx context.Context, userID, slotID string) error {
	return uc.availabilityRepo.DeleteForUser(ctx, slotID, userID)
}
