package domain

// AvailabilitySlot is a weekly training window. DayOfWeek is 0 (Monday) to 6 (Sunday),
// times are "HH:MM".
type AvailabilitySlot struct {
	ID        string `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	DayOfWeek int    `json:"day_of_week" db:"day_of_week"`
	StartTime string `json:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" db:"end_time"`
}

// SlotKey identifies a slot by its exact (day, start, end) tuple.
type SlotKey struct {
	Day   int
	Start string
	End   string
}

func (s AvailabilitySlot) Key() SlotKey {
	return SlotKey{Day: s.DayOfWeek, Start: s.StartTime, End: s.EndTime}
}
