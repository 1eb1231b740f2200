package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeReservationConfirmed EventType = "RESERVATION_CONFIRMED"
)

type EventStatus string

const (
	EventStatusPending EventStatus = "PENDING"
	EventStatusQueued  EventStatus = "QUEUED"
	EventStatusFailed  EventStatus = "FAILED"
)

// ReservationConfirmedEvent is published after the booking backend accepts a
// submission; downstream consumers (mail, reporting) pick it up from Kafka.
type ReservationConfirmedEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	SessionID uuid.UUID `json:"session_id"`

	// Booking outcome
	ReservationNumbers []string  `json:"reservation_numbers"`
	VisitDate          time.Time `json:"visit_date"`
	TotalAmount        float64   `json:"total_amount"`
	TicketCount        int       `json:"ticket_count"`

	// Recipient info
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	// Status tracking
	Status    EventStatus `json:"status"`
	LastError *string     `json:"last_error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewReservationConfirmedEvent creates a pending confirmation event
func NewReservationConfirmedEvent(sessionID uuid.UUID) *ReservationConfirmedEvent {
	now := time.Now()
	return &ReservationConfirmedEvent{
		ID:        uuid.New(),
		Type:      EventTypeReservationConfirmed,
		SessionID: sessionID,
		Status:    EventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ToJSON serializes the event for the wire
func (e *ReservationConfirmedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events of one session to the same partition
func (e *ReservationConfirmedEvent) GetPartitionKey() string {
	return e.SessionID.String()
}
