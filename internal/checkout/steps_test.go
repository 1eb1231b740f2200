package checkout

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomerInfo() *CustomerInfo {
	return &CustomerInfo{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
		Phone:     "0123456789",
	}
}

func validCustomerAddress() *CustomerAddress {
	return &CustomerAddress{
		Address: "1 Park Avenue",
		City:    "Springfield",
		ZipCode: "75001",
		Country: "France",
	}
}

func validPaymentInfo() *PaymentInfo {
	return &PaymentInfo{
		CardNumber: "4111111111111111",
		Month:      "12",
		Year:       "2099",
		CVV:        "123",
	}
}

// readySession returns a session with every step's gate satisfied
func readySession() *ReservationSession {
	sess := NewReservationSession()
	date := time.Now().AddDate(0, 1, 0)
	sess.Tickets = []TicketSelection{{TicketTypeID: 2, Quantity: 2}}
	sess.Total = 59.8
	sess.VisitDate = &date
	sess.AcceptedTerms = true
	sess.CustomerInfo = validCustomerInfo()
	sess.CustomerAddress = validCustomerAddress()
	sess.PaymentInfo = validPaymentInfo()
	return sess
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Step
		to      Step
		allowed bool
	}{
		{"forward to successor", StepTicketSelection, StepDateSelection, true},
		{"backward to predecessor", StepSummary, StepDateSelection, true},
		{"skipping forward", StepTicketSelection, StepSummary, false},
		{"skipping backward", StepAddress, StepDateSelection, false},
		{"payment forward only via submission", StepPayment, StepConfirmation, false},
		{"no exit from confirmation", StepConfirmation, StepPayment, false},
		{"unknown step", Step("BOGUS"), StepSummary, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStepOrder(t *testing.T) {
	next, ok := StepTicketSelection.Next()
	require.True(t, ok)
	assert.Equal(t, StepDateSelection, next)

	_, ok = StepConfirmation.Next()
	assert.False(t, ok)

	prev, ok := StepDateSelection.Prev()
	require.True(t, ok)
	assert.Equal(t, StepTicketSelection, prev)

	_, ok = StepTicketSelection.Prev()
	assert.False(t, ok)

	assert.True(t, StepSummary.IsValid())
	assert.False(t, Step("BOGUS").IsValid())
}

func TestSequencerAdvance(t *testing.T) {
	sq := NewSequencer()

	t.Run("blocked without tickets", func(t *testing.T) {
		sess := NewReservationSession()

		_, err := sq.Advance(sess)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "tickets", validationErr.Field)
	})

	t.Run("blocked when a quantity is zero", func(t *testing.T) {
		sess := NewReservationSession()
		sess.Tickets = []TicketSelection{{TicketTypeID: 1, Quantity: 0}}

		_, err := sq.Advance(sess)
		assert.Error(t, err)
	})

	t.Run("walks the full wizard forward", func(t *testing.T) {
		sess := readySession()

		expected := []Step{StepDateSelection, StepSummary, StepCustomerInfo, StepAddress, StepPayment}
		for _, want := range expected {
			next, err := sq.Advance(sess)
			require.NoError(t, err)
			assert.Equal(t, want, next)
			sess.Step = next
		}
	})

	t.Run("date gate", func(t *testing.T) {
		sess := readySession()
		sess.Step = StepDateSelection
		sess.VisitDate = nil

		_, err := sq.Advance(sess)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "visit_date", validationErr.Field)
	})

	t.Run("terms gate", func(t *testing.T) {
		sess := readySession()
		sess.Step = StepSummary
		sess.AcceptedTerms = false

		_, err := sq.Advance(sess)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "accepted_terms", validationErr.Field)
	})

	t.Run("customer gate rejects bad email", func(t *testing.T) {
		sess := readySession()
		sess.Step = StepCustomerInfo
		sess.CustomerInfo.Email = "not-an-email"

		_, err := sq.Advance(sess)
		assert.Error(t, err)
	})

	t.Run("payment never advances through navigation", func(t *testing.T) {
		sess := readySession()
		sess.Step = StepPayment

		_, err := sq.Advance(sess)

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("terminal session requires reset", func(t *testing.T) {
		sess := readySession()
		sess.Step = StepConfirmation
		sess.ConfirmedReservations = []ConfirmedReservation{{ReservationNumber: "RES-1001"}}

		_, err := sq.Advance(sess)
		assert.True(t, errors.Is(err, ErrResetRequired))
	})
}

func TestSequencerBack(t *testing.T) {
	sq := NewSequencer()

	t.Run("steps back one at a time", func(t *testing.T) {
		sess := readySession()
		sess.Step = StepPayment

		prev, err := sq.Back(sess)
		require.NoError(t, err)
		assert.Equal(t, StepAddress, prev)
	})

	t.Run("preserves entered data", func(t *testing.T) {
		sess := readySession()
		sess.Step = StepSummary

		_, err := sq.Back(sess)
		require.NoError(t, err)

		assert.NotNil(t, sess.VisitDate)
		assert.True(t, sess.AcceptedTerms)
		assert.NotEmpty(t, sess.Tickets)
	})

	t.Run("rejected on the first step", func(t *testing.T) {
		sess := NewReservationSession()

		_, err := sq.Back(sess)

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("rejected on a confirmed session", func(t *testing.T) {
		sess := readySession()
		sess.Step = StepConfirmation
		sess.ConfirmedReservations = []ConfirmedReservation{{ReservationNumber: "RES-1001"}}

		_, err := sq.Back(sess)
		assert.True(t, errors.Is(err, ErrResetRequired))
	})
}
