package ws

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// Per-session enrollment events.
	EventFrameFeedback EventType = "enrollment.frame"
	EventPoseCaptured  EventType = "enrollment.pose_captured"
	EventComplete      EventType = "enrollment.complete"
	EventCancelled     EventType = "enrollment.cancelled"

	// Global attendance events.
	EventCheckin EventType = "attendance.checkin"
)

type Event struct {
	SessionID uuid.UUID   `json:"-"`
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
