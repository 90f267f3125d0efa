package main

import (
	"fmt"
	"log"

	"artistly/internal/artists"
	"artistly/internal/settings"
	"artistly/internal/shared/config"
	"artistly/internal/shared/database"
	"artistly/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Artistly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.GetPostgreSQL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payout_history",
		"bookings",
		"artists",
		"financial_settings",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	artistUserIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedArtists(artistUserIDs); err != nil {
		return fmt.Errorf("failed to seed artists: %w", err)
	}

	if err := s.SeedFinancialSettings(); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	return nil
}

// SeedUsers creates admin, super-admin, artist and customer accounts and
// returns the artist account ids in order.
func (s *Seeder) SeedUsers() ([]uuid.UUID, error) {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	seedUsers := []users.User{
		{FirstName: "Asha", LastName: "Rao", Email: "superadmin@artistly.test", Role: users.RoleAdmin, IsSuperAdmin: true, Phone: "+919800000001"},
		{FirstName: "Vikram", LastName: "Shetty", Email: "admin@artistly.test", Role: users.RoleAdmin, Phone: "+919800000002"},
		{FirstName: "Priya", LastName: "Nair", Email: "priya.artist@artistly.test", Role: users.RoleArtist, Phone: "+919800000003"},
		{FirstName: "Meera", LastName: "Kulkarni", Email: "meera.artist@artistly.test", Role: users.RoleArtist, Phone: "+919800000004"},
		{FirstName: "Rohan", LastName: "Desai", Email: "customer@artistly.test", Role: users.RoleCustomer, Phone: "+919800000005"},
	}

	var artistUserIDs []uuid.UUID
	for i := range seedUsers {
		seedUsers[i].Password = string(password)
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return nil, err
		}
		fmt.Printf("  Created user: %s (%s)\n", seedUsers[i].Email, seedUsers[i].Role)
		if seedUsers[i].Role == users.RoleArtist {
			artistUserIDs = append(artistUserIDs, seedUsers[i].ID)
		}
	}
	return artistUserIDs, nil
}

// SeedArtists creates artist profiles with referral codes and service areas.
func (s *Seeder) SeedArtists(artistUserIDs []uuid.UUID) error {
	profiles := []artists.Artist{
		{
			DisplayName:      "Priya Mehndi Studio",
			ReferralCode:     "PRIYA10",
			ReferralDiscount: 10,
			Services:         artists.StringList{"mehndi", "makeup"},
			ServiceAreas: artists.ServiceAreaList{
				{State: "Maharashtra", District: "Pune", Localities: []string{"Kothrud", "Baner"}},
				{State: "Maharashtra", District: "Mumbai", Localities: []string{"Andheri"}},
			},
		},
		{
			DisplayName:      "Meera Captures",
			ReferralCode:     "MEERA15",
			ReferralDiscount: 15,
			Services:         artists.StringList{"photography"},
			ServiceAreas: artists.ServiceAreaList{
				{State: "Karnataka", District: "Bengaluru Urban", Localities: []string{"Indiranagar"}},
			},
		},
	}

	for i := range profiles {
		if i >= len(artistUserIDs) {
			break
		}
		profiles[i].UserID = artistUserIDs[i]
		if err := s.db.PostgreSQL.Create(&profiles[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  Created artist profile: %s (%s)\n", profiles[i].DisplayName, profiles[i].ReferralCode)
	}
	return nil
}

// SeedFinancialSettings creates the platform fee row.
func (s *Seeder) SeedFinancialSettings() error {
	row := settings.FinancialSettings{PlatformFeePercentage: 10}
	if err := s.db.PostgreSQL.Create(&row).Error; err != nil {
		return err
	}
	fmt.Printf("  Created financial settings: platform fee %.0f%%\n", row.PlatformFeePercentage)
	return nil
}
