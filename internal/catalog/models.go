package catalog

import (
	"time"
)

// TicketType is a purchasable price category
type TicketType string

const (
	TicketTypeStudent  TicketType = "STUDENT"
	TicketTypeAdult    TicketType = "ADULT"
	TicketTypeGroup    TicketType = "GROUP"
	TicketTypePass2Day TicketType = "PASS_2DAY"
)

// TicketPrice is one entry of the park's price catalog
type TicketPrice struct {
	ID           int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Type         TicketType `json:"type" gorm:"type:varchar(20);uniqueIndex;not null"`
	Amount       float64    `json:"amount" gorm:"not null;check:amount >= 0"`
	DurationDays int        `json:"duration_days" gorm:"not null;default:1;check:duration_days >= 1"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for TicketPrice
func (TicketPrice) TableName() string {
	return "ticket_prices"
}

// PriceListResponse wraps the full catalog for API responses
type PriceListResponse struct {
	Prices []TicketPrice `json:"prices"`
	Count  int           `json:"count"`
}
