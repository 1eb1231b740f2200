package checkout

import "time"

type TicketSelectionRequest struct {
	TicketTypeID int `json:"ticket_type_id" validate:"required,min=1"`
	Quantity     int `json:"quantity" validate:"min=0"`
}

// SetTicketsRequest replaces the whole selection; an empty list is a valid
// replacement and clears every line
type SetTicketsRequest struct {
	Tickets []TicketSelectionRequest `json:"tickets" validate:"dive"`
}

type SetVisitDateRequest struct {
	// Null clears the date
	VisitDate *time.Time `json:"visit_date"`
}

type SetTermsRequest struct {
	AcceptedTerms *bool `json:"accepted_terms" validate:"required"`
}

type SetCustomerInfoRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

type SetCustomerAddressRequest struct {
	Address string `json:"address" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	ZipCode string `json:"zip_code" validate:"required,numeric,len=5"`
	Country string `json:"country" validate:"required,max=100"`
}

type SetPaymentInfoRequest struct {
	CardNumber string `json:"card_number" validate:"required,numeric,len=16"`
	Month      string `json:"month" validate:"required,len=2"`
	Year       string `json:"year" validate:"required,numeric,len=4"`
	CVV        string `json:"cvv" validate:"required,numeric,len=3"`
}
