// Command main runs the database seeder for Folio.
package main

import (
	"flag"
	"log"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/seed"
)

func main() {
	numProjects := flag.Int("projects", 9, "Number of projects to create")
	numSessions := flag.Int("sessions", 120, "Number of visitor sessions to create")
	days := flag.Int("days", 30, "Spread analytics over this many trailing days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d projects, %d sessions over %d days, clean=%v\n",
		*numProjects, *numSessions, *days, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if err := s.SeedAll(seed.Options{
		NumProjects: *numProjects,
		NumSessions: *numSessions,
		Days:        *days,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✅ Seeding complete")
}
