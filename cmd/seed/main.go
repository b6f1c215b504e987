// Command main runs the database seeder for Filmgraph.
package main

import (
	"flag"
	"log"

	"filmgraph/internal/config"
	"filmgraph/internal/database"
	"filmgraph/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numFilms := flag.Int("films", 200, "Number of films to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d films, clean=%v\n", *numUsers, *numFilms, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumFilms:    *numFilms,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
