package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gdugdh24/sparring-backend/internal/domain"
)

type memorySlots struct {
	slots []*domain.AvailabilitySlot
}

func (m *memorySlots) ListByUser(_ context.Context, userID string) ([]*domain.AvailabilitySlot, error) {
	var out []*domain.AvailabilitySlot
	for _, s := range m.slots {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memorySlots) Create(_ context.Context, s *domain.AvailabilitySlot) error {
	s.ID = fmt.Sprintf("slot-%d", len(m.slots)+1)
	m.slots = append(m.slots, s)
	return nil
}

func (m *memorySlots) DeleteForUser(_ context.Context, id, userID string) error {
	for i, s := range m.slots {
		if s.ID == id && s.UserID == userID {
			m.slots = append(m.slots[:i], m.slots[i+1:]...)
			return nil
		}
	}
	return domain.ErrSlotNotFound
}

func day(d int) *int { return &d }

func TestIsClockTime(t *testing.T) {
	tests := map[string]bool{
		"00:00": true,
		"09:30": true,
		"23:59": true,
		"24:00": false,
		"9:30":  false,
		"09:60": false,
		"0930":  false,
		"":      false,
	}
	for in, want := range tests {
		if got := IsClockTime(in); got != want {
			t.Errorf("IsClockTime(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAddSlot(t *testing.T) {
	repo := &memorySlots{}
	uc := NewAvailabilityUseCase(repo)
	ctx := context.Background()

	slot, err := uc.AddSlot(ctx, "u1", &AddSlotRequest{DayOfWeek: day(0), StartTime: "18:00", EndTime: "20:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.ID == "" || slot.UserID != "u1" || slot.DayOfWeek != 0 {
		t.Fatalf("unexpected slot: %+v", slot)
	}

	invalid := []*AddSlotRequest{
		{DayOfWeek: nil, StartTime: "18:00", EndTime: "20:00"},
		{DayOfWeek: day(7), StartTime: "18:00", EndTime: "20:00"},
		{DayOfWeek: day(-1), StartTime: "18:00", EndTime: "20:00"},
		{DayOfWeek: day(1), StartTime: "6pm", EndTime: "20:00"},
		{DayOfWeek: day(1), StartTime: "20:00", EndTime: "18:00"},
		{DayOfWeek: day(1), StartTime: "18:00", EndTime: "18:00"},
	}
	for _, req := range invalid {
		if _, err := uc.AddSlot(ctx, "u1", req); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("AddSlot(%+v): expected ErrInvalidInput, got %v", req, err)
		}
	}
	if len(repo.slots) != 1 {
		t.Fatalf("invalid slots were stored: %d", len(repo.slots))
	}
}

func TestListAndDeleteSlots(t *testing.T) {
	repo := &memorySlots{}
	uc := NewAvailabilityUseCase(repo)
	ctx := context.Background()

	empty, err := uc.ListSlots(ctx, "u1")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v, %v", empty, err)
	}

	mine, _ := uc.AddSlot(ctx, "u1", &AddSlotRequest{DayOfWeek: day(2), StartTime: "07:00", EndTime: "08:00"})
	theirs, _ := uc.AddSlot(ctx, "u2", &AddSlotRequest{DayOfWeek: day(2), StartTime: "07:00", EndTime: "08:00"})

	if err := uc.DeleteSlot(ctx, "u1", theirs.ID); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Fatalf("deleting another user's slot: expected ErrSlotNotFound, got %v", err)
	}
	if err := uc.DeleteSlot(ctx, "u1", mine.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.DeleteSlot(ctx, "u1", mine.ID); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Fatalf("second delete: expected ErrSlotNotFound, got %v", err)
	}

	left, _ := uc.ListSlots(ctx, "u2")
	if len(left) != 1 {
		t.Fatalf("expected u2 slot to survive, got %d", len(left))
	}
}
