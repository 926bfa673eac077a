// Command main runs the database seeder for CivicTide.
package main

import (
	"flag"
	"log"

	"civictide/internal/bootstrap"
	"civictide/internal/config"
	"civictide/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of citizen accounts to create")
	numReports := flag.Int("reports", 100, "Number of reports to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d reports, clean=%v\n", *numUsers, *numReports, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumReports:  *numReports,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
}
