package checkout

import (
	"context"
	"fmt"
	"time"

	"parkpass/pkg/logger"

	"github.com/google/uuid"
)

// PriceCatalog is the checkout-side view of the price catalog: current unit
// amount per ticket type ID.
type PriceCatalog interface {
	UnitAmounts(ctx context.Context) (map[int]float64, error)
}

// Service owns the checkout session lifecycle. Every mutation recomputes what
// it derives (totals) before the store commit, so a snapshot is always
// internally consistent.
type Service interface {
	CreateSession(ctx context.Context) (*ReservationSession, string, error)
	GetSession(ctx context.Context, id uuid.UUID) (*ReservationSession, error)
	SetTickets(ctx context.Context, id uuid.UUID, selections []TicketSelection) (*ReservationSession, []int, error)
	SetVisitDate(ctx context.Context, id uuid.UUID, date *time.Time) (*ReservationSession, error)
	SetAcceptedTerms(ctx context.Context, id uuid.UUID, accepted bool) (*ReservationSession, error)
	SetCustomerInfo(ctx context.Context, id uuid.UUID, info *CustomerInfo) (*ReservationSession, error)
	SetCustomerAddress(ctx context.Context, id uuid.UUID, addr *CustomerAddress) (*ReservationSession, error)
	SetPaymentInfo(ctx context.Context, id uuid.UUID, info *PaymentInfo) (*ReservationSession, error)
	Advance(ctx context.Context, id uuid.UUID) (*ReservationSession, error)
	Back(ctx context.Context, id uuid.UUID) (*ReservationSession, error)
	Submit(ctx context.Context, id uuid.UUID) (*ReservationSession, error)
	Reset(ctx context.Context, id uuid.UUID) (*ReservationSession, error)
}

type service struct {
	store       *SessionStore
	catalog     PriceCatalog
	sequencer   *Sequencer
	coordinator *Coordinator
	tokens      *TokenManager
	logger      *logger.Logger
}

func NewService(store *SessionStore, catalog PriceCatalog, coordinator *Coordinator, tokens *TokenManager) Service {
	return &service{
		store:       store,
		catalog:     catalog,
		sequencer:   NewSequencer(),
		coordinator: coordinator,
		tokens:      tokens,
		logger:      logger.GetDefault(),
	}
}

// CreateSession persists an empty session and mints the token that scopes it
func (s *service) CreateSession(ctx context.Context) (*ReservationSession, string, error) {
	sess, err := s.store.Create(ctx)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(sess.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.LogSessionCreated(ctx, sess.ID.String())
	return sess, token, nil
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (*ReservationSession, error) {
	return s.store.Get(ctx, id)
}

// SetTickets replaces the selection. Duplicates merge, zero quantities drop
// out, stale ticket types are stripped and reported, and the total is
// recomputed against the current catalog before the single snapshot commit.
func (s *service) SetTickets(ctx context.Context, id uuid.UUID, selections []TicketSelection) (*ReservationSession, []int, error) {
	for _, sel := range selections {
		if sel.Quantity < 0 {
			return nil, nil, NewValidationError("quantity", "quantity cannot be negative")
		}
	}

	normalized := NormalizeSelections(selections)

	unitAmounts, err := s.catalog.UnitAmounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load price catalog: %w", err)
	}

	quote := PriceSelections(normalized, unitAmounts)
	if len(quote.StaleTicketTypeIDs) > 0 {
		s.logger.LogStaleSelections(ctx, id.String(), quote.StaleTicketTypeIDs)
		normalized = StripStale(normalized, quote.StaleTicketTypeIDs)
	}

	sess, err := s.store.SetTickets(ctx, id, normalized, quote.Total)
	if err != nil {
		return nil, nil, err
	}
	return sess, quote.StaleTicketTypeIDs, nil
}

func (s *service) SetVisitDate(ctx context.Context, id uuid.UUID, date *time.Time) (*ReservationSession, error) {
	if date != nil && date.Before(startOfToday()) {
		return nil, NewValidationError("visit_date", "visit date cannot be in the past")
	}
	return s.store.SetVisitDate(ctx, id, date)
}

func (s *service) SetAcceptedTerms(ctx context.Context, id uuid.UUID, accepted bool) (*ReservationSession, error) {
	return s.store.SetAcceptedTerms(ctx, id, accepted)
}

// SetCustomerInfo sets the customer contact details; nil clears them.
// A non-nil value must be valid, absence is always allowed (the step gate, not
// the setter, decides when the field becomes mandatory).
func (s *service) SetCustomerInfo(ctx context.Context, id uuid.UUID, info *CustomerInfo) (*ReservationSession, error) {
	if info != nil {
		if err := info.Validate(); err != nil {
			return nil, err
		}
	}
	return s.store.SetCustomerInfo(ctx, id, info)
}

// SetCustomerAddress sets the billing address; nil clears it
func (s *service) SetCustomerAddress(ctx context.Context, id uuid.UUID, addr *CustomerAddress) (*ReservationSession, error) {
	if addr != nil {
		if err := addr.Validate(); err != nil {
			return nil, err
		}
	}
	return s.store.SetCustomerAddress(ctx, id, addr)
}

// SetPaymentInfo sets the card details; nil clears them
func (s *service) SetPaymentInfo(ctx context.Context, id uuid.UUID, info *PaymentInfo) (*ReservationSession, error) {
	if info != nil {
		if err := info.Validate(); err != nil {
			return nil, err
		}
	}
	return s.store.SetPaymentInfo(ctx, id, info)
}

// Advance moves to the next step if the current step's gate holds
func (s *service) Advance(ctx context.Context, id uuid.UUID) (*ReservationSession, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := s.sequencer.Advance(sess)
	if err != nil {
		return nil, err
	}
	return s.store.SetStep(ctx, id, next)
}

// Back steps backward without discarding any persisted data
func (s *service) Back(ctx context.Context, id uuid.UUID) (*ReservationSession, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	prev, err := s.sequencer.Back(sess)
	if err != nil {
		return nil, err
	}
	return s.store.SetStep(ctx, id, prev)
}

func (s *service) Submit(ctx context.Context, id uuid.UUID) (*ReservationSession, error) {
	sess, err := s.coordinator.Submit(ctx, id)
	if err != nil {
		s.logger.LogSubmissionFailed(ctx, id.String(), err)
		return nil, err
	}

	s.logger.LogSubmissionSucceeded(ctx, id.String(), len(sess.ConfirmedReservations))
	return sess, nil
}

// Reset returns the session to a fresh state for a new booking. The only way
// out of a confirmed session.
func (s *service) Reset(ctx context.Context, id uuid.UUID) (*ReservationSession, error) {
	sess, err := s.store.Reset(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.LogSessionReset(ctx, id.String())
	return sess, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
