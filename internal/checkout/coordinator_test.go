package checkout

import (
	"context"
	"errors"
	"testing"

	"parkpass/internal/notifications"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingAPI struct {
	reservations []ConfirmedReservation
	err          error
	calls        int
	lastRequest  *BookingRequest
}

func (f *fakeBookingAPI) SubmitReservation(_ context.Context, req *BookingRequest) ([]ConfirmedReservation, error) {
	f.calls++
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

type fakeGuard struct {
	held     bool
	acquires int
	releases int
}

func (f *fakeGuard) Acquire(_ context.Context, _ uuid.UUID) (bool, error) {
	f.acquires++
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeGuard) Release(_ context.Context, _ uuid.UUID) error {
	f.releases++
	f.held = false
	return nil
}

type fakeProducer struct {
	events []*notifications.ReservationConfirmedEvent
}

func (f *fakeProducer) PublishReservationConfirmed(_ context.Context, event *notifications.ReservationConfirmedEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeProducer) Close() error                      { return nil }
func (f *fakeProducer) HealthCheck(context.Context) error { return nil }

// submittableSession seeds the store with a session that passes every
// submission check
func submittableSession(t *testing.T, store *SessionStore) *ReservationSession {
	t.Helper()
	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	ready := readySession()
	_, err = store.SetTickets(ctx, sess.ID, ready.Tickets, ready.Total)
	require.NoError(t, err)
	_, err = store.SetVisitDate(ctx, sess.ID, ready.VisitDate)
	require.NoError(t, err)
	_, err = store.SetAcceptedTerms(ctx, sess.ID, true)
	require.NoError(t, err)
	_, err = store.SetCustomerInfo(ctx, sess.ID, ready.CustomerInfo)
	require.NoError(t, err)
	_, err = store.SetCustomerAddress(ctx, sess.ID, ready.CustomerAddress)
	require.NoError(t, err)
	_, err = store.SetPaymentInfo(ctx, sess.ID, ready.PaymentInfo)
	require.NoError(t, err)

	return sess
}

func TestCoordinatorSubmitSuccess(t *testing.T) {
	store := NewSessionStore(newMemorySnapshots())
	api := &fakeBookingAPI{reservations: []ConfirmedReservation{{ReservationNumber: "RES-1001"}}}
	guard := &fakeGuard{}
	producer := &fakeProducer{}
	coordinator := NewCoordinator(store, api, guard, producer)

	sess := submittableSession(t, store)

	confirmed, err := coordinator.Submit(context.Background(), sess.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, api.calls)
	assert.True(t, confirmed.IsTerminal())
	assert.Equal(t, StepConfirmation, confirmed.Step)
	assert.Equal(t, "RES-1001", confirmed.ConfirmedReservations[0].ReservationNumber)

	// The booking request carried the full session
	require.NotNil(t, api.lastRequest)
	assert.Equal(t, confirmed.Tickets, api.lastRequest.Tickets)
	assert.Equal(t, "Jane", api.lastRequest.CustomerInfo.FirstName)

	// Confirmation event published
	require.Len(t, producer.events, 1)
	assert.Equal(t, []string{"RES-1001"}, producer.events[0].ReservationNumbers)
	assert.Equal(t, 2, producer.events[0].TicketCount)
}

func TestCoordinatorSubmitValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name  string
		setup func(ctx context.Context, store *SessionStore, id uuid.UUID)
		field string
	}{
		{
			name: "terms not accepted",
			setup: func(ctx context.Context, store *SessionStore, id uuid.UUID) {
				_, err := store.SetAcceptedTerms(ctx, id, false)
				require.NoError(t, err)
			},
			field: "accepted_terms",
		},
		{
			name: "no tickets",
			setup: func(ctx context.Context, store *SessionStore, id uuid.UUID) {
				_, err := store.SetTickets(ctx, id, nil, 0)
				require.NoError(t, err)
			},
			field: "tickets",
		},
		{
			name: "no visit date",
			setup: func(ctx context.Context, store *SessionStore, id uuid.UUID) {
				_, err := store.SetVisitDate(ctx, id, nil)
				require.NoError(t, err)
			},
			field: "visit_date",
		},
		{
			name: "missing payment info",
			setup: func(ctx context.Context, store *SessionStore, id uuid.UUID) {
				_, err := store.SetPaymentInfo(ctx, id, nil)
				require.NoError(t, err)
			},
			field: "payment_info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewSessionStore(newMemorySnapshots())
			api := &fakeBookingAPI{reservations: []ConfirmedReservation{{ReservationNumber: "RES-1001"}}}
			coordinator := NewCoordinator(store, api, &fakeGuard{}, nil)

			ctx := context.Background()
			sess := submittableSession(t, store)
			tt.setup(ctx, store, sess.ID)

			_, err := coordinator.Submit(ctx, sess.ID)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Zero(t, api.calls, "validation failures must never reach the booking backend")
		})
	}
}

func TestCoordinatorSubmitBackendFailure(t *testing.T) {
	store := NewSessionStore(newMemorySnapshots())
	api := &fakeBookingAPI{err: errors.New("upstream capacity exhausted")}
	guard := &fakeGuard{}
	coordinator := NewCoordinator(store, api, guard, nil)

	ctx := context.Background()
	sess := submittableSession(t, store)

	_, err := coordinator.Submit(ctx, sess.ID)

	var submissionErr *SubmissionError
	require.ErrorAs(t, err, &submissionErr)
	assert.Contains(t, submissionErr.Error(), "upstream capacity exhausted")

	// Session untouched and retryable
	loaded, loadErr := store.Get(ctx, sess.ID)
	require.NoError(t, loadErr)
	assert.False(t, loaded.IsTerminal())
	assert.NotEqual(t, StepConfirmation, loaded.Step)
	assert.Equal(t, 1, guard.releases, "guard released after failure so a retry goes through")

	// Retry succeeds once the backend recovers
	api.err = nil
	api.reservations = []ConfirmedReservation{{ReservationNumber: "RES-2002"}}

	confirmed, err := coordinator.Submit(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, confirmed.IsTerminal())
	assert.Equal(t, 2, api.calls)
}

func TestCoordinatorSubmitInFlight(t *testing.T) {
	store := NewSessionStore(newMemorySnapshots())
	api := &fakeBookingAPI{reservations: []ConfirmedReservation{{ReservationNumber: "RES-1001"}}}
	guard := &fakeGuard{held: true}
	coordinator := NewCoordinator(store, api, guard, nil)

	sess := submittableSession(t, store)

	_, err := coordinator.Submit(context.Background(), sess.ID)

	assert.True(t, errors.Is(err, ErrSubmitInFlight))
	assert.Zero(t, api.calls)
}

func TestCoordinatorSubmitTerminalSession(t *testing.T) {
	store := NewSessionStore(newMemorySnapshots())
	api := &fakeBookingAPI{reservations: []ConfirmedReservation{{ReservationNumber: "RES-1001"}}}
	coordinator := NewCoordinator(store, api, nil, nil)

	ctx := context.Background()
	sess := submittableSession(t, store)

	_, err := coordinator.Submit(ctx, sess.ID)
	require.NoError(t, err)

	_, err = coordinator.Submit(ctx, sess.ID)
	assert.True(t, errors.Is(err, ErrSessionTerminal))
	assert.Equal(t, 1, api.calls, "a confirmed session never submits again")
}
