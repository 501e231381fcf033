// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"log"

	"folio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumProjects int
	NumSessions int
	Days        int
	ShouldClean bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []any{
		&models.PageView{},
		&models.AnalyticsSession{},
		&models.Project{},
		&models.Content{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedAll populates an admin account, content sections, projects, and a
// spread of visitor analytics.
func (s *Seeder) SeedAll(opts Options) error {
	admin, err := s.SeedAdmin("admin@folio.dev", "FolioAdmin12!@")
	if err != nil {
		return err
	}
	log.Printf("Created admin %s", admin.Email)

	if err := s.factory.CreateContentSections(admin.ID); err != nil {
		return err
	}
	log.Printf("Created %d content sections", len(models.ContentSections))

	projects, err := s.factory.CreateProjects(opts.NumProjects)
	if err != nil {
		return err
	}
	log.Printf("Created %d projects", len(projects))

	sessions, views, err := s.factory.CreateAnalytics(opts.NumSessions, opts.Days)
	if err != nil {
		return err
	}
	log.Printf("Created %d sessions with %d page views", sessions, views)

	return nil
}

// SeedAdmin creates the admin account with a known password.
func (s *Seeder) SeedAdmin(email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	admin := &models.User{
		Username: "admin",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}
