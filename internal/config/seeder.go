package config

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/persistence/repositories"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

// Seeder handles database seeding
type Seeder struct {
	db       *gorm.DB
	profiles *repositories.ProfileRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, profiles: repositories.NewProfileRepository(db)}
}

// demoStaff are the accounts a fresh installation signs in with.
// This is for development/testing only; change the passwords after setup.
var demoStaff = []domain.User{
	{Name: "Admin User", Email: "admin@rxnexus.com", Phone: "+92 300 1234567", Role: domain.RoleAdministrator, Password: "password123"},
	{Name: "Pharmacist", Email: "pharmacist@rxnexus.com", Phone: "+92 300 7654321", Role: domain.RolePharmacist, Password: "password123"},
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedStaff(ctx); err != nil {
		log.Printf("⚠️ Staff seeder skipped: %v", err)
	}
	if err := SeedCatalogue(ctx, s.db); err != nil {
		log.Printf("⚠️ Catalogue seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedStaff creates the demo accounts that do not exist yet
func (s *Seeder) seedStaff(ctx context.Context) error {
	for _, user := range demoStaff {
		exists, err := s.profiles.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := s.profiles.Insert(ctx, user); err != nil {
			return err
		}
		log.Printf("✅ Staff account created: %s (%s)", user.Email, user.Role)
	}
	return nil
}
