package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"parkpass/internal/notifications"

	"github.com/google/uuid"
)

// BookingAPI is the outbound contract of the remote booking backend
type BookingAPI interface {
	SubmitReservation(ctx context.Context, req *BookingRequest) ([]ConfirmedReservation, error)
}

// BookingRequest packages a full session for the booking backend. Payment
// data is sent but never returned and never echoed in confirmation output.
type BookingRequest struct {
	Tickets         []TicketSelection `json:"tickets"`
	VisitDate       time.Time         `json:"visit_date"`
	CustomerInfo    CustomerInfo      `json:"customer"`
	CustomerAddress CustomerAddress   `json:"address"`
	PaymentInfo     PaymentInfo       `json:"payment"`
}

// SubmitGuard serializes submissions per session (to avoid duplicate bookings
// from a double-click racing an in-flight request)
type SubmitGuard interface {
	Acquire(ctx context.Context, sessionID uuid.UUID) (bool, error)
	Release(ctx context.Context, sessionID uuid.UUID) error
}

// Coordinator packages a session into a booking request, calls the booking
// backend exactly once per accepted submit, and drives the session to its
// terminal state on success.
type Coordinator struct {
	store    *SessionStore
	api      BookingAPI
	guard    SubmitGuard
	producer notifications.Producer
}

// NewCoordinator creates a submission coordinator. guard and producer may be
// nil (no double-submit protection / no confirmation events).
func NewCoordinator(store *SessionStore, api BookingAPI, guard SubmitGuard, producer notifications.Producer) *Coordinator {
	return &Coordinator{
		store:    store,
		api:      api,
		guard:    guard,
		producer: producer,
	}
}

// Submit validates the session, calls the booking backend and records the
// confirmed reservation numbers. On any failure the session is left unchanged
// and retryable; a ValidationError is always raised before any network call.
func (c *Coordinator) Submit(ctx context.Context, sessionID uuid.UUID) (*ReservationSession, error) {
	sess, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.IsTerminal() {
		return nil, ErrSessionTerminal
	}

	// Fail fast before touching the network
	if err := validateForSubmission(sess); err != nil {
		return nil, err
	}

	if c.guard != nil {
		acquired, err := c.guard.Acquire(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("submit guard error: %w", err)
		}
		if !acquired {
			return nil, ErrSubmitInFlight
		}
	}

	req := &BookingRequest{
		Tickets:         sess.Tickets,
		VisitDate:       *sess.VisitDate,
		CustomerInfo:    *sess.CustomerInfo,
		CustomerAddress: *sess.CustomerAddress,
		PaymentInfo:     *sess.PaymentInfo,
	}

	reservations, err := c.api.SubmitReservation(ctx, req)
	if err != nil {
		// Release the guard so a manual retry goes through
		if c.guard != nil {
			if releaseErr := c.guard.Release(ctx, sessionID); releaseErr != nil {
				log.Printf("Warning: failed to release submit lock for session %s: %v", sessionID, releaseErr)
			}
		}
		return nil, &SubmissionError{Err: err}
	}

	confirmed, err := c.store.Confirm(ctx, sessionID, reservations)
	if err != nil {
		// The booking exists server-side; the guard stays held until it
		// expires so a retry cannot double-book.
		return nil, fmt.Errorf("booking confirmed but session update failed: %w", err)
	}

	c.publishConfirmation(ctx, confirmed)

	return confirmed, nil
}

// publishConfirmation emits the confirmation event, best effort. A publish
// failure never fails the booking.
func (c *Coordinator) publishConfirmation(ctx context.Context, sess *ReservationSession) {
	if c.producer == nil {
		return
	}

	event := notifications.NewReservationConfirmedEvent(sess.ID)
	event.VisitDate = *sess.VisitDate
	event.TotalAmount = sess.Total
	event.RecipientEmail = sess.CustomerInfo.Email
	event.RecipientName = sess.CustomerInfo.FirstName + " " + sess.CustomerInfo.LastName
	for _, r := range sess.ConfirmedReservations {
		event.ReservationNumbers = append(event.ReservationNumbers, r.ReservationNumber)
	}
	for _, t := range sess.Tickets {
		event.TicketCount += t.Quantity
	}

	if err := c.producer.PublishReservationConfirmed(ctx, event); err != nil {
		log.Printf("Warning: failed to publish confirmation event for session %s: %v", sess.ID, err)
	}
}

// validateForSubmission re-checks every step gate the session passed through.
// Defensive: the sequencer blocked forward navigation on these already, but
// the coordinator is the last stop before the booking backend.
func validateForSubmission(sess *ReservationSession) error {
	if !sess.HasTickets() {
		return NewValidationError("tickets", "select at least one ticket")
	}
	if !sess.HasVisitDate() {
		return NewValidationError("visit_date", "choose a visit date")
	}
	if !sess.AcceptedTerms {
		return NewValidationError("accepted_terms", "terms must be accepted")
	}
	if err := sess.CustomerInfo.Validate(); err != nil {
		return err
	}
	if err := sess.CustomerAddress.Validate(); err != nil {
		return err
	}
	if err := sess.PaymentInfo.Validate(); err != nil {
		return err
	}
	return nil
}
