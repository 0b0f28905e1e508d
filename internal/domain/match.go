package domain

import (
	"fmt"
	"time"
)

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

// ParseMatchStatus converts a raw string to a MatchStatus.
func ParseMatchStatus(s string) (MatchStatus, error) {
	st := MatchStatus(s)
	switch st {
	case MatchStatusPending, MatchStatusAccepted, MatchStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsResponse reports whether st is a status a participant may respond with.
func (st MatchStatus) IsResponse() bool {
	return st == MatchStatusAccepted || st == MatchStatusRejected
}

// Match links an unordered pair of users. UserAID is always the smaller id.
type Match struct {
	ID                 string      `json:"id" db:"id"`
	UserAID            string      `json:"user_a_id" db:"user_a_id"`
	UserBID            string      `json:"user_b_id" db:"user_b_id"`
	CompatibilityScore *float64    `json:"compatibility_score" db:"compatibility_score"`
	AIReasoning        *string     `json:"ai_reasoning" db:"ai_reasoning"`
	Risks              *string     `json:"risks" db:"risks"`
	Strengths          *string     `json:"strengths" db:"strengths"`
	Status             MatchStatus `json:"status" db:"status"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
}

// CanonicalPair orders two user ids so the pair has a single stored form.
func CanonicalPair(user1ID, user2ID string) (string, string) {
	if user1ID > user2ID {
		return user2ID, user1ID
	}
	return user1ID, user2ID
}

func (m *Match) HasUser(userID string) bool {
	return m.UserAID == userID || m.UserBID == userID
}

func (m *Match) GetOtherUserID(userID string) (string, bool) {
	if m.UserAID == userID {
		return m.UserBID, true
	}
	if m.UserBID == userID {
		return m.UserAID, true
	}
	return "", false
}

// Score returns the compatibility score, treating a missing one as 0.
func (m *Match) Score() float64 {
	if m.CompatibilityScore == nil {
		return 0
	}
	return *m.CompatibilityScore
}

// Match event types published on the event bus.
const (
	EventMatchCreated   = "match.created"
	EventMatchResponded = "match.responded"
)

type MatchEvent struct {
	Type               string      `json:"type"`
	MatchID            string      `json:"match_id"`
	UserAID            string      `json:"user_a_id"`
	UserBID            string      `json:"user_b_id"`
	Status             MatchStatus `json:"status"`
	CompatibilityScore float64     `json:"compatibility_score"`
	ActorID            string      `json:"actor_id"`
	OccurredAt         time.Time   `json:"occurred_at"`
}

// NewMatchEvent snapshots m as an event of the given type caused by actorID.
func NewMatchEvent(eventType string, m *Match, actorID string) MatchEvent {
	return MatchEvent{
		Type:               eventType,
		MatchID:            m.ID,
		UserAID:            m.UserAID,
		UserBID:            m.UserBID,
		Status:             m.Status,
		CompatibilityScore: m.Score(),
		ActorID:            actorID,
		OccurredAt:         time.Now().UTC(),
	}
}
