// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"civictide/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample citizen account.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		FullName: gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		Phone:    gofakeit.Phone(),
		IsActive: true,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAdmin persists an administrator account.
func (f *Factory) CreateAdmin(overrides ...func(*models.User)) (*models.User, error) {
	return f.CreateUser(append([]func(*models.User){func(u *models.User) {
		u.IsAdmin = true
	}}, overrides...)...)
}

// CreateReport constructs and persists a report filed by the given user.
func (f *Factory) CreateReport(user *models.User, overrides ...func(*models.Report)) (*models.Report, error) {
	category := RandomCategory(f.rng)
	report := &models.Report{
		Title:       ReportTitle(category),
		Description: gofakeit.Paragraph(1, 3, 8, " "),
		Category:    category,
		Status:      RandomStatus(f.rng),
		Latitude:    gofakeit.Latitude(),
		Longitude:   gofakeit.Longitude(),
		Address:     gofakeit.Street() + ", " + gofakeit.City(),
		UserID:      user.ID,
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	report.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	if report.Status == models.StatusResolved {
		report.ResolutionNotes = "Crew dispatched and issue fixed."
	}

	for _, override := range overrides {
		override(report)
	}

	if err := f.db.Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// CreateVote records user's vote on report, ignoring duplicates.
func (f *Factory) CreateVote(user *models.User, report *models.Report) error {
	vote := &models.Vote{UserID: user.ID, ReportID: report.ID}
	err := f.db.Create(vote).Error
	if err != nil && isDuplicateErr(err) {
		return nil
	}
	return err
}

// CreateComment attaches a generated comment by user to report.
func (f *Factory) CreateComment(user *models.User, report *models.Report) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(f.rng.Intn(12) + 4),
		UserID:   user.ID,
		ReportID: report.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func isDuplicateErr(err error) bool {
	return err == gorm.ErrDuplicatedKey
}

// RandomCategory picks a category with a bias toward road damage and
// sanitation, the two most commonly filed kinds of issue.
func RandomCategory(rng *rand.Rand) models.ReportCategory {
	weighted := append([]models.ReportCategory{
		models.CategoryRoadDamage,
		models.CategoryRoadDamage,
		models.CategorySanitation,
	}, models.AllCategories...)
	return weighted[rng.Intn(len(weighted))]
}

// RandomStatus picks a status with most reports still open.
func RandomStatus(rng *rand.Rand) models.ReportStatus {
	weighted := []models.ReportStatus{
		models.StatusReported,
		models.StatusReported,
		models.StatusReported,
		models.StatusUnderReview,
		models.StatusInProgress,
		models.StatusResolved,
		models.StatusResolved,
		models.StatusRejected,
	}
	return weighted[rng.Intn(len(weighted))]
}

// ReportTitle generates a short plausible title for the given category.
func ReportTitle(category models.ReportCategory) string {
	switch category {
	case models.CategoryRoadDamage:
		return fmt.Sprintf("Pothole on %s", gofakeit.Street())
	case models.CategoryWaterSupply:
		return fmt.Sprintf("No water supply in %s", gofakeit.City())
	case models.CategorySanitation:
		return fmt.Sprintf("Overflowing bins near %s", gofakeit.Street())
	case models.CategoryElectricity:
		return fmt.Sprintf("Power outage around %s", gofakeit.Street())
	case models.CategoryFlooding:
		return fmt.Sprintf("Flooded road at %s", gofakeit.Street())
	case models.CategoryIllegalDumping:
		return fmt.Sprintf("Illegal dumping behind %s", gofakeit.Street())
	case models.CategoryStreetlight:
		return fmt.Sprintf("Broken streetlight on %s", gofakeit.Street())
	default:
		return gofakeit.Sentence(5)
	}
}
