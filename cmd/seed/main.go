package main

import (
	"fmt"
	"log"

	"parkpass/internal/catalog"
	"parkpass/internal/shared/config"
	"parkpass/internal/shared/database"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Parkpass Price Catalog Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning price catalog...")
	if err := seeder.CleanCatalog(); err != nil {
		log.Fatalf("Failed to clean price catalog: %v", err)
	}
	fmt.Println("✅ Price catalog cleaned successfully")

	fmt.Println("\n🌱 Seeding price catalog...")
	if err := seeder.SeedCatalog(); err != nil {
		log.Fatalf("Failed to seed price catalog: %v", err)
	}
	fmt.Println("✅ Price catalog seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Catalog is ready.")
}

// CleanCatalog truncates the price table and resets the ID sequence
func (s *Seeder) CleanCatalog() error {
	pg := s.db.GetPostgreSQL()
	return pg.Exec("TRUNCATE TABLE ticket_prices RESTART IDENTITY").Error
}

// SeedCatalog inserts the standard ticket price list
func (s *Seeder) SeedCatalog() error {
	pg := s.db.GetPostgreSQL()

	prices := []catalog.TicketPrice{
		{Type: catalog.TicketTypeStudent, Amount: 19.9, DurationDays: 1},
		{Type: catalog.TicketTypeAdult, Amount: 29.9, DurationDays: 1},
		{Type: catalog.TicketTypeGroup, Amount: 24.9, DurationDays: 1},
		{Type: catalog.TicketTypePass2Day, Amount: 49.9, DurationDays: 2},
	}

	for _, price := range prices {
		if err := pg.Create(&price).Error; err != nil {
			return fmt.Errorf("failed to insert price %s: %w", price.Type, err)
		}
		fmt.Printf("  • %s — %.2f (%d day(s))\n", price.Type, price.Amount, price.DurationDays)
	}

	return nil
}
