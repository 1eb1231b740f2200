package checkout

import (
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TicketSelection is one line of the ticket basket.
// At most one entry per ticket type; a quantity of zero is never stored.
type TicketSelection struct {
	TicketTypeID int `json:"ticket_type_id"`
	Quantity     int `json:"quantity"`
}

// CustomerInfo holds the visitor contact details collected at the customer step
type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CustomerAddress holds the billing address collected at the address step
type CustomerAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// PaymentInfo holds the card details collected at the payment step.
// Format validation only; no payment is processed by this service.
type PaymentInfo struct {
	CardNumber string `json:"card_number"`
	Month      string `json:"month"`
	Year       string `json:"year"`
	CVV        string `json:"cvv"`
}

// ConfirmedReservation is one reservation record returned by the booking
// backend; a single purchase may decompose into several of them.
type ConfirmedReservation struct {
	ReservationNumber string `json:"reservation_number"`
}

// ReservationSession is the aggregate root of one checkout attempt, owned
// exclusively by the SessionStore. Total is derived, never set independently
// of Tickets: the two always commit in the same snapshot write.
type ReservationSession struct {
	ID   uuid.UUID `json:"id"`
	Step Step      `json:"step"`

	Tickets       []TicketSelection `json:"tickets"`
	Total         float64           `json:"total"`
	VisitDate     *time.Time        `json:"visit_date,omitempty"`
	AcceptedTerms bool              `json:"accepted_terms"`

	CustomerInfo    *CustomerInfo    `json:"customer_info,omitempty"`
	CustomerAddress *CustomerAddress `json:"customer_address,omitempty"`
	PaymentInfo     *PaymentInfo     `json:"payment_info,omitempty"`

	ConfirmedReservations []ConfirmedReservation `json:"confirmed_reservations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReservationSession creates an empty session at the first step
func NewReservationSession() *ReservationSession {
	now := time.Now().UTC()
	return &ReservationSession{
		ID:        uuid.New(),
		Step:      StepTicketSelection,
		Tickets:   []TicketSelection{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsTerminal reports whether the session holds confirmed reservations.
// A terminal session accepts no further booking mutations.
func (s *ReservationSession) IsTerminal() bool {
	return len(s.ConfirmedReservations) > 0
}

// HasTickets reports whether at least one ticket with a positive quantity is selected
func (s *ReservationSession) HasTickets() bool {
	if len(s.Tickets) == 0 {
		return false
	}
	for _, t := range s.Tickets {
		if t.Quantity <= 0 {
			return false
		}
	}
	return true
}

// HasVisitDate reports whether a visit date has been chosen
func (s *ReservationSession) HasVisitDate() bool {
	return s.VisitDate != nil && !s.VisitDate.IsZero()
}

// QuantityFor returns the selected quantity for a ticket type, zero if absent
func (s *ReservationSession) QuantityFor(ticketTypeID int) int {
	for _, t := range s.Tickets {
		if t.TicketTypeID == ticketTypeID {
			return t.Quantity
		}
	}
	return 0
}

// Field format patterns. Zip and phone follow the national formats the park
// sells to (5-digit postal codes, 10-digit phone numbers starting with 0).
var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^0[1-9][0-9]{8}$`)
	zipPattern   = regexp.MustCompile(`^[0-9]{5}$`)
	cardPattern  = regexp.MustCompile(`^[0-9]{16}$`)
	monthPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	cvvPattern   = regexp.MustCompile(`^[0-9]{3}$`)
)

// Validate checks presence and format of all customer fields
func (c *CustomerInfo) Validate() error {
	if c == nil {
		return NewValidationError("customer_info", "customer info is required")
	}
	if c.FirstName == "" {
		return NewValidationError("first_name", "first name is required")
	}
	if c.LastName == "" {
		return NewValidationError("last_name", "last name is required")
	}
	if !emailPattern.MatchString(c.Email) {
		return NewValidationError("email", "email address is invalid")
	}
	if !phonePattern.MatchString(c.Phone) {
		return NewValidationError("phone", "phone number is invalid")
	}
	return nil
}

// Validate checks presence and format of all address fields
func (a *CustomerAddress) Validate() error {
	if a == nil {
		return NewValidationError("customer_address", "customer address is required")
	}
	if a.Address == "" {
		return NewValidationError("address", "address is required")
	}
	if a.City == "" {
		return NewValidationError("city", "city is required")
	}
	if !zipPattern.MatchString(a.ZipCode) {
		return NewValidationError("zip_code", "zip code must be 5 digits")
	}
	if a.Country == "" {
		return NewValidationError("country", "country is required")
	}
	return nil
}

// Validate checks the card fields for format only; expiry year must not be in the past
func (p *PaymentInfo) Validate() error {
	if p == nil {
		return NewValidationError("payment_info", "payment info is required")
	}
	if !cardPattern.MatchString(p.CardNumber) {
		return NewValidationError("card_number", "card number must be 16 digits")
	}
	if !monthPattern.MatchString(p.Month) {
		return NewValidationError("month", "expiry month must be between 01 and 12")
	}
	year, err := strconv.Atoi(p.Year)
	if err != nil || year < time.Now().Year() {
		return NewValidationError("year", "expiry year must not be in the past")
	}
	if !cvvPattern.MatchString(p.CVV) {
		return NewValidationError("cvv", "cvv must be 3 digits")
	}
	return nil
}

// CardLast4 returns the last four card digits for redacted responses
func (p *PaymentInfo) CardLast4() string {
	if p == nil || len(p.CardNumber) < 4 {
		return ""
	}
	return p.CardNumber[len(p.CardNumber)-4:]
}
