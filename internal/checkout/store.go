package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SnapshotStore is the persistence port of the session store. One full JSON
// snapshot per session, written synchronously on every mutation so a client
// that reloads always resumes from the last committed state.
type SnapshotStore interface {
	Save(ctx context.Context, sess *ReservationSession) error
	Load(ctx context.Context, id uuid.UUID) (*ReservationSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SessionStore is the single source of truth for the ReservationSession
// aggregate. Every setter loads the snapshot, applies one mutation and writes
// the full snapshot back; readers never observe a tickets/total pair that does
// not correspond to the same logical selection.
//
// The store is deliberately permissive about field values (validation lives in
// the DTO layer and the step gates); the one rule it owns is terminality: once
// confirmed reservations exist, booking mutations are rejected.
type SessionStore struct {
	snapshots SnapshotStore
}

func NewSessionStore(snapshots SnapshotStore) *SessionStore {
	return &SessionStore{snapshots: snapshots}
}

// Create persists and returns a fresh empty session
func (st *SessionStore) Create(ctx context.Context) (*ReservationSession, error) {
	sess := NewReservationSession()
	if err := st.snapshots.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist new session: %w", err)
	}
	return sess, nil
}

// Get loads the current snapshot of a session
func (st *SessionStore) Get(ctx context.Context, id uuid.UUID) (*ReservationSession, error) {
	return st.snapshots.Load(ctx, id)
}

// update applies one mutation and commits the snapshot. Mutations of booking
// data pass guarded=true and are rejected on a terminal session.
func (st *SessionStore) update(ctx context.Context, id uuid.UUID, guarded bool, mutate func(*ReservationSession)) (*ReservationSession, error) {
	sess, err := st.snapshots.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if guarded && sess.IsTerminal() {
		return nil, ErrSessionTerminal
	}

	mutate(sess)
	sess.UpdatedAt = time.Now().UTC()

	if err := st.snapshots.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// SetTickets replaces the whole ticket list and the precomputed total in one
// atomic update. The caller recomputes the total through the pricing engine
// before calling; the store never consults the catalog itself.
func (st *SessionStore) SetTickets(ctx context.Context, id uuid.UUID, selections []TicketSelection, total float64) (*ReservationSession, error) {
	return st.update(ctx, id, true, func(sess *ReservationSession) {
		if selections == nil {
			selections = []TicketSelection{}
		}
		sess.Tickets = selections
		sess.Total = total
	})
}

// SetVisitDate sets or clears the visit date
func (st *SessionStore) SetVisitDate(ctx context.Context, id uuid.UUID, date *time.Time) (*ReservationSession, error) {
	return st.update(ctx, id, true, func(sess *ReservationSession) {
		sess.VisitDate = date
	})
}

// SetAcceptedTerms records whether the terms checkbox is ticked
func (st *SessionStore) SetAcceptedTerms(ctx context.Context, id uuid.UUID, accepted bool) (*ReservationSession, error) {
	return st.update(ctx, id, true, func(sess *ReservationSession) {
		sess.AcceptedTerms = accepted
	})
}

// SetCustomerInfo sets or clears the customer contact details
func (st *SessionStore) SetCustomerInfo(ctx context.Context, id uuid.UUID, info *CustomerInfo) (*ReservationSession, error) {
	return st.update(ctx, id, true, func(sess *ReservationSession) {
		sess.CustomerInfo = info
	})
}

// SetCustomerAddress sets or clears the customer address
func (st *SessionStore) SetCustomerAddress(ctx context.Context, id uuid.UUID, addr *CustomerAddress) (*ReservationSession, error) {
	return st.update(ctx, id, true, func(sess *ReservationSession) {
		sess.CustomerAddress = addr
	})
}

// SetPaymentInfo sets or clears the card details
func (st *SessionStore) SetPaymentInfo(ctx context.Context, id uuid.UUID, info *PaymentInfo) (*ReservationSession, error) {
	return st.update(ctx, id, true, func(sess *ReservationSession) {
		sess.PaymentInfo = info
	})
}

// SetStep records the wizard step the session sits on
func (st *SessionStore) SetStep(ctx context.Context, id uuid.UUID, step Step) (*ReservationSession, error) {
	return st.update(ctx, id, false, func(sess *ReservationSession) {
		sess.Step = step
	})
}

// Confirm writes the reservation numbers returned by the booking backend and
// moves the session to the confirmation step. This flips the session terminal,
// so an empty list is rejected: the confirmation step without confirmed
// reservations would be a non-terminal session stranded on a gateless step.
func (st *SessionStore) Confirm(ctx context.Context, id uuid.UUID, reservations []ConfirmedReservation) (*ReservationSession, error) {
	if len(reservations) == 0 {
		return nil, NewValidationError("reservations", "at least one confirmed reservation is required")
	}
	return st.update(ctx, id, true, func(sess *ReservationSession) {
		sess.ConfirmedReservations = reservations
		sess.Step = StepConfirmation
	})
}

// Reset returns the session to its empty initial value under the same ID.
// This is the one operation allowed on a terminal session.
func (st *SessionStore) Reset(ctx context.Context, id uuid.UUID) (*ReservationSession, error) {
	return st.update(ctx, id, false, func(sess *ReservationSession) {
		fresh := NewReservationSession()
		fresh.ID = sess.ID
		fresh.CreatedAt = sess.CreatedAt
		*sess = *fresh
	})
}
