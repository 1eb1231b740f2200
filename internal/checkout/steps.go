package checkout

// Step identifies one screen of the checkout wizard
type Step string

const (
	StepTicketSelection Step = "TICKET_SELECTION"
	StepDateSelection   Step = "DATE_SELECTION"
	StepSummary         Step = "SUMMARY"
	StepCustomerInfo    Step = "CUSTOMER_INFO"
	StepAddress         Step = "ADDRESS"
	StepPayment         Step = "PAYMENT"
	StepConfirmation    Step = "CONFIRMATION"
)

// stepOrder is the fixed forward sequence of the wizard
var stepOrder = []Step{
	StepTicketSelection,
	StepDateSelection,
	StepSummary,
	StepCustomerInfo,
	StepAddress,
	StepPayment,
	StepConfirmation,
}

// allowedTransitions defines the valid navigation moves. Forward goes only to
// the immediate successor, backward only to the immediate predecessor.
// CONFIRMATION is reachable solely through a successful submission and has no
// outgoing moves; leaving it requires a session reset.
var allowedTransitions = map[Step][]Step{
	StepTicketSelection: {StepDateSelection},
	StepDateSelection:   {StepTicketSelection, StepSummary},
	StepSummary:         {StepDateSelection, StepCustomerInfo},
	StepCustomerInfo:    {StepSummary, StepAddress},
	StepAddress:         {StepCustomerInfo, StepPayment},
	StepPayment:         {StepAddress},
	StepConfirmation:    {},
}

// CanTransition checks if a navigation move from one step to another is allowed
func CanTransition(from, to Step) bool {
	allowed, exists := allowedTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Next returns the forward successor of a step
func (s Step) Next() (Step, bool) {
	for i, step := range stepOrder {
		if step == s && i+1 < len(stepOrder) {
			return stepOrder[i+1], true
		}
	}
	return "", false
}

// Prev returns the backward predecessor of a step
func (s Step) Prev() (Step, bool) {
	for i, step := range stepOrder {
		if step == s && i > 0 {
			return stepOrder[i-1], true
		}
	}
	return "", false
}

// IsValid reports whether the value names a wizard step
func (s Step) IsValid() bool {
	for _, step := range stepOrder {
		if step == s {
			return true
		}
	}
	return false
}

// Sequencer validates step navigation against the session's gating predicates
type Sequencer struct{}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Gate reports whether the session may leave the given step forward.
// Returns nil when the gate holds, a ValidationError otherwise.
func (sq *Sequencer) Gate(sess *ReservationSession, step Step) error {
	switch step {
	case StepTicketSelection:
		if !sess.HasTickets() {
			return NewValidationError("tickets", "select at least one ticket")
		}
	case StepDateSelection:
		if !sess.HasVisitDate() {
			return NewValidationError("visit_date", "choose a visit date")
		}
	case StepSummary:
		if !sess.AcceptedTerms {
			return NewValidationError("accepted_terms", "terms must be accepted")
		}
	case StepCustomerInfo:
		if err := sess.CustomerInfo.Validate(); err != nil {
			return err
		}
	case StepAddress:
		if err := sess.CustomerAddress.Validate(); err != nil {
			return err
		}
	case StepPayment:
		if err := sess.PaymentInfo.Validate(); err != nil {
			return err
		}
	case StepConfirmation:
		// terminal; nothing to leave forward to
		return ErrResetRequired
	}
	return nil
}

// Advance returns the step the session moves to when leaving its current step
// forward. The current step's gate must hold; the payment step advances only
// through submission, never through navigation.
func (sq *Sequencer) Advance(sess *ReservationSession) (Step, error) {
	if sess.IsTerminal() {
		return "", ErrResetRequired
	}
	if sess.Step == StepPayment {
		return "", NewValidationError("step", "the payment step completes through submission")
	}
	if err := sq.Gate(sess, sess.Step); err != nil {
		return "", err
	}
	next, ok := sess.Step.Next()
	if !ok || !CanTransition(sess.Step, next) {
		return "", NewValidationError("step", "no forward step from "+string(sess.Step))
	}
	return next, nil
}

// Back returns the step the session moves to when navigating backward.
// Backward navigation never discards entered data. A confirmed session cannot
// navigate back into the booking steps; it must be reset.
func (sq *Sequencer) Back(sess *ReservationSession) (Step, error) {
	if sess.IsTerminal() || sess.Step == StepConfirmation {
		return "", ErrResetRequired
	}
	prev, ok := sess.Step.Prev()
	if !ok {
		return "", NewValidationError("step", "already on the first step")
	}
	if !CanTransition(sess.Step, prev) {
		return "", NewValidationError("step", "cannot navigate back from "+string(sess.Step))
	}
	return prev, nil
}
