package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"parkpass/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	unitAmounts map[int]float64
	err         error
}

func (f *fakeCatalog) UnitAmounts(context.Context) (map[int]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.unitAmounts, nil
}

func testTokenManager() *TokenManager {
	return NewTokenManager(&config.Config{
		Session: config.SessionConfig{
			TokenSecret: "test-secret",
			TokenTTL:    time.Hour,
		},
	})
}

func newTestService(t *testing.T, catalog PriceCatalog, api BookingAPI) (Service, *SessionStore) {
	t.Helper()
	store := NewSessionStore(newMemorySnapshots())
	coordinator := NewCoordinator(store, api, &fakeGuard{}, nil)
	return NewService(store, catalog, coordinator, testTokenManager()), store
}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{unitAmounts: map[int]float64{1: 19.9, 2: 29.9, 3: 24.9, 4: 49.9}}
}

func TestServiceCreateSession(t *testing.T) {
	svc, _ := newTestService(t, defaultCatalog(), nil)

	sess, token, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StepTicketSelection, sess.Step)
	assert.NotEmpty(t, token)

	parsed, err := testTokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, parsed)
}

func TestServiceSetTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes the total on every change", func(t *testing.T) {
		svc, _ := newTestService(t, defaultCatalog(), nil)
		sess, _, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		updated, stale, err := svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 2, Quantity: 2}})
		require.NoError(t, err)
		assert.Empty(t, stale)
		assert.Equal(t, 59.8, updated.Total)

		updated, _, err = svc.SetTickets(ctx, sess.ID, []TicketSelection{
			{TicketTypeID: 2, Quantity: 2},
			{TicketTypeID: 1, Quantity: 1},
		})
		require.NoError(t, err)
		assert.InDelta(t, 79.7, updated.Total, 1e-9)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		svc, _ := newTestService(t, defaultCatalog(), nil)
		sess, _, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		_, _, err = svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 3, Quantity: 3}})
		require.NoError(t, err)

		updated, _, err := svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 3, Quantity: 0}})
		require.NoError(t, err)

		assert.Empty(t, updated.Tickets)
		assert.Zero(t, updated.Total)
		assert.Zero(t, updated.QuantityFor(3))
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		svc, _ := newTestService(t, defaultCatalog(), nil)
		sess, _, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		_, _, err = svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 1, Quantity: -1}})

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("stale ticket types stripped and reported", func(t *testing.T) {
		svc, store := newTestService(t, defaultCatalog(), nil)
		sess, _, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		updated, stale, err := svc.SetTickets(ctx, sess.ID, []TicketSelection{
			{TicketTypeID: 2, Quantity: 1},
			{TicketTypeID: 99, Quantity: 5},
		})
		require.NoError(t, err)

		assert.Equal(t, []int{99}, stale)
		assert.Equal(t, 29.9, updated.Total)
		assert.Zero(t, updated.QuantityFor(99))

		// The stripped selection is what got persisted
		loaded, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, []TicketSelection{{TicketTypeID: 2, Quantity: 1}}, loaded.Tickets)
	})

	t.Run("catalog failure leaves the session untouched", func(t *testing.T) {
		catalog := defaultCatalog()
		svc, store := newTestService(t, catalog, nil)
		sess, _, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		_, _, err = svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 2, Quantity: 2}})
		require.NoError(t, err)

		catalog.err = errors.New("catalog unavailable")
		_, _, err = svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 1, Quantity: 1}})
		require.Error(t, err)

		loaded, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, 59.8, loaded.Total)
	})
}

func TestServiceSetVisitDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, defaultCatalog(), nil)
	sess, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	past := time.Now().AddDate(0, 0, -1)
	_, err = svc.SetVisitDate(ctx, sess.ID, &past)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "visit_date", validationErr.Field)

	future := time.Now().AddDate(0, 1, 0)
	updated, err := svc.SetVisitDate(ctx, sess.ID, &future)
	require.NoError(t, err)
	assert.True(t, updated.HasVisitDate())
}

func TestServiceFieldValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, defaultCatalog(), nil)
	sess, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	t.Run("customer info", func(t *testing.T) {
		bad := validCustomerInfo()
		bad.Phone = "12345"
		_, err := svc.SetCustomerInfo(ctx, sess.ID, bad)
		assert.Error(t, err)

		_, err = svc.SetCustomerInfo(ctx, sess.ID, validCustomerInfo())
		assert.NoError(t, err)
	})

	t.Run("address", func(t *testing.T) {
		bad := validCustomerAddress()
		bad.ZipCode = "750"
		_, err := svc.SetCustomerAddress(ctx, sess.ID, bad)
		assert.Error(t, err)

		_, err = svc.SetCustomerAddress(ctx, sess.ID, validCustomerAddress())
		assert.NoError(t, err)
	})

	t.Run("payment", func(t *testing.T) {
		bad := validPaymentInfo()
		bad.Month = "13"
		_, err := svc.SetPaymentInfo(ctx, sess.ID, bad)
		assert.Error(t, err)

		expired := validPaymentInfo()
		expired.Year = "2020"
		_, err = svc.SetPaymentInfo(ctx, sess.ID, expired)
		assert.Error(t, err)

		_, err = svc.SetPaymentInfo(ctx, sess.ID, validPaymentInfo())
		assert.NoError(t, err)
	})
}

func TestServiceClearFields(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, defaultCatalog(), nil)
	sess, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.SetCustomerInfo(ctx, sess.ID, validCustomerInfo())
	require.NoError(t, err)
	_, err = svc.SetCustomerAddress(ctx, sess.ID, validCustomerAddress())
	require.NoError(t, err)
	_, err = svc.SetPaymentInfo(ctx, sess.ID, validPaymentInfo())
	require.NoError(t, err)

	// Nil clears each field without tripping validation
	updated, err := svc.SetCustomerInfo(ctx, sess.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.CustomerInfo)

	updated, err = svc.SetCustomerAddress(ctx, sess.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.CustomerAddress)

	updated, err = svc.SetPaymentInfo(ctx, sess.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.PaymentInfo)

	loaded, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.CustomerInfo)
	assert.Nil(t, loaded.CustomerAddress)
	assert.Nil(t, loaded.PaymentInfo)
}

func TestServiceSetTicketsEmptyReplacement(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, defaultCatalog(), nil)
	sess, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, _, err = svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 2, Quantity: 2}})
	require.NoError(t, err)

	updated, stale, err := svc.SetTickets(ctx, sess.ID, []TicketSelection{})
	require.NoError(t, err)
	assert.Empty(t, stale)
	assert.Empty(t, updated.Tickets)
	assert.Zero(t, updated.Total)
}

func TestServiceNavigation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, defaultCatalog(), nil)
	sess, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	// Gate blocks an empty session
	_, err = svc.Advance(ctx, sess.ID)
	assert.Error(t, err)

	_, _, err = svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 2, Quantity: 2}})
	require.NoError(t, err)

	updated, err := svc.Advance(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepDateSelection, updated.Step)

	// Back preserves the selection
	updated, err = svc.Back(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepTicketSelection, updated.Step)
	assert.Equal(t, 2, updated.QuantityFor(2))
	assert.Equal(t, 59.8, updated.Total)
}

func TestServiceSubmitAndReset(t *testing.T) {
	ctx := context.Background()
	api := &fakeBookingAPI{reservations: []ConfirmedReservation{{ReservationNumber: "RES-1001"}, {ReservationNumber: "RES-1002"}}}
	svc, store := newTestService(t, defaultCatalog(), api)

	sess, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, _, err = svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 2, Quantity: 2}})
	require.NoError(t, err)
	future := time.Now().AddDate(0, 1, 0)
	_, err = svc.SetVisitDate(ctx, sess.ID, &future)
	require.NoError(t, err)
	_, err = svc.SetAcceptedTerms(ctx, sess.ID, true)
	require.NoError(t, err)
	_, err = svc.SetCustomerInfo(ctx, sess.ID, validCustomerInfo())
	require.NoError(t, err)
	_, err = svc.SetCustomerAddress(ctx, sess.ID, validCustomerAddress())
	require.NoError(t, err)
	_, err = svc.SetPaymentInfo(ctx, sess.ID, validPaymentInfo())
	require.NoError(t, err)

	confirmed, err := svc.Submit(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, confirmed.IsTerminal())
	assert.Len(t, confirmed.ConfirmedReservations, 2)

	// Terminal session rejects edits until reset
	_, _, err = svc.SetTickets(ctx, sess.ID, []TicketSelection{{TicketTypeID: 1, Quantity: 1}})
	assert.True(t, errors.Is(err, ErrSessionTerminal))

	fresh, err := svc.Reset(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fresh.ID)
	assert.False(t, fresh.IsTerminal())
	assert.Equal(t, StepTicketSelection, fresh.Step)

	loaded, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Tickets)
	assert.Zero(t, loaded.Total)
}
