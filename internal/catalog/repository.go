package catalog

import (
	"gorm.io/gorm"
)

type Repository interface {
	GetAll() ([]TicketPrice, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll() ([]TicketPrice, error) {
	var prices []TicketPrice
	err := r.db.Order("id asc").Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}
