package checkout

import "sort"

// QuoteLine is one priced line of a ticket selection
type QuoteLine struct {
	TicketTypeID int     `json:"ticket_type_id"`
	Quantity     int     `json:"quantity"`
	UnitAmount   float64 `json:"unit_amount"`
	Subtotal     float64 `json:"subtotal"`
}

// Quote is the result of pricing a selection against the catalog.
// Selections whose ticket type is absent from the catalog contribute zero to
// the total and are reported in StaleTicketTypeIDs so the caller can remove
// them instead of silently keeping them.
type Quote struct {
	Lines              []QuoteLine `json:"lines"`
	Total              float64     `json:"total"`
	StaleTicketTypeIDs []int       `json:"stale_ticket_type_ids,omitempty"`
}

// PriceSelections derives line totals and the grand total of a selection from
// the unit amounts of the price catalog. Pure function: no I/O, no mutation of
// its inputs.
func PriceSelections(selections []TicketSelection, unitAmounts map[int]float64) Quote {
	quote := Quote{Lines: make([]QuoteLine, 0, len(selections))}

	for _, sel := range selections {
		amount, ok := unitAmounts[sel.TicketTypeID]
		if !ok {
			quote.StaleTicketTypeIDs = append(quote.StaleTicketTypeIDs, sel.TicketTypeID)
			continue
		}

		subtotal := float64(sel.Quantity) * amount
		quote.Lines = append(quote.Lines, QuoteLine{
			TicketTypeID: sel.TicketTypeID,
			Quantity:     sel.Quantity,
			UnitAmount:   amount,
			Subtotal:     subtotal,
		})
		quote.Total += subtotal
	}

	return quote
}

// NormalizeSelections collapses duplicate ticket types (quantities add up) and
// drops zero or negative quantities. Setting a quantity to zero is how a line
// is removed; a zero entry is never retained.
func NormalizeSelections(selections []TicketSelection) []TicketSelection {
	byType := make(map[int]int, len(selections))
	for _, sel := range selections {
		byType[sel.TicketTypeID] += sel.Quantity
	}

	ids := make([]int, 0, len(byType))
	for id, qty := range byType {
		if qty > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	normalized := make([]TicketSelection, 0, len(ids))
	for _, id := range ids {
		normalized = append(normalized, TicketSelection{TicketTypeID: id, Quantity: byType[id]})
	}
	return normalized
}

// StripStale removes the given ticket type IDs from a selection
func StripStale(selections []TicketSelection, staleIDs []int) []TicketSelection {
	if len(staleIDs) == 0 {
		return selections
	}

	stale := make(map[int]bool, len(staleIDs))
	for _, id := range staleIDs {
		stale[id] = true
	}

	kept := make([]TicketSelection, 0, len(selections))
	for _, sel := range selections {
		if !stale[sel.TicketTypeID] {
			kept = append(kept, sel)
		}
	}
	return kept
}
