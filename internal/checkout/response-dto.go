package checkout

import "time"

// PaymentSummary is the redacted payment view exposed in snapshots. Raw card
// data never leaves the service.
type PaymentSummary struct {
	CardLast4 string `json:"card_last4"`
	Month     string `json:"month"`
	Year      string `json:"year"`
}

type SessionResponse struct {
	ID   string `json:"id"`
	Step Step   `json:"step"`

	Tickets       []TicketSelection `json:"tickets"`
	Total         float64           `json:"total"`
	VisitDate     *time.Time        `json:"visit_date,omitempty"`
	AcceptedTerms bool              `json:"accepted_terms"`

	CustomerInfo    *CustomerInfo    `json:"customer_info,omitempty"`
	CustomerAddress *CustomerAddress `json:"customer_address,omitempty"`
	Payment         *PaymentSummary  `json:"payment,omitempty"`

	ConfirmedReservations []ConfirmedReservation `json:"confirmed_reservations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateSessionResponse struct {
	Session SessionResponse `json:"session"`
	Token   string          `json:"token"`
}

// SetTicketsResponse reports the stripped stale ticket types alongside the
// committed snapshot
type SetTicketsResponse struct {
	Session            SessionResponse `json:"session"`
	StaleTicketTypeIDs []int           `json:"stale_ticket_type_ids,omitempty"`
}

func (s *ReservationSession) ToResponse() SessionResponse {
	resp := SessionResponse{
		ID:                    s.ID.String(),
		Step:                  s.Step,
		Tickets:               s.Tickets,
		Total:                 s.Total,
		VisitDate:             s.VisitDate,
		AcceptedTerms:         s.AcceptedTerms,
		CustomerInfo:          s.CustomerInfo,
		CustomerAddress:       s.CustomerAddress,
		ConfirmedReservations: s.ConfirmedReservations,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	if resp.Tickets == nil {
		resp.Tickets = []TicketSelection{}
	}
	if s.PaymentInfo != nil {
		resp.Payment = &PaymentSummary{
			CardLast4: s.PaymentInfo.CardLast4(),
			Month:     s.PaymentInfo.Month,
			Year:      s.PaymentInfo.Year,
		}
	}
	return resp
}
