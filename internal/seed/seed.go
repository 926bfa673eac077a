// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"log"

	"civictide/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumReports  int
	ShouldClean bool
}

// Seed populates the database with demo citizens, reports, votes, and
// comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("starting database seeding with %d users and %d reports...", opts.NumUsers, opts.NumReports)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	admin, err := factory.CreateAdmin(func(u *models.User) {
		u.FullName = "City Operations"
		u.Email = "ops@civictide.local"
	})
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	reports := make([]*models.Report, 0, opts.NumReports)
	for i := 0; i < opts.NumReports; i++ {
		author := users[factory.rng.Intn(len(users))]
		report, err := factory.CreateReport(author)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	// Engagement: each report gets a handful of votes and comments from
	// random citizens.
	for _, report := range reports {
		voters := factory.rng.Intn(len(users)) / 2
		for i := 0; i < voters; i++ {
			if err := factory.CreateVote(users[factory.rng.Intn(len(users))], report); err != nil {
				return err
			}
		}
		for i := 0; i < factory.rng.Intn(4); i++ {
			if _, err := factory.CreateComment(users[factory.rng.Intn(len(users))], report); err != nil {
				return err
			}
		}
	}

	log.Printf("seeding complete: %d users, %d reports, admin %s", len(users), len(reports), admin.Email)
	log.Println("all seeded users have the password: password123")
	return nil
}

func clearData(db *gorm.DB) error {
	// Engagement rows first, then reports, then users.
	for _, stmt := range []string{
		`DELETE FROM votes`,
		`DELETE FROM comments`,
		`DELETE FROM reports`,
		`DELETE FROM users`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
