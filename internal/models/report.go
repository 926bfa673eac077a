package models

import (
	"time"
)

// ReportStatus is the lifecycle state of a report. Administrators may move a
// report from any status to any other; no transition graph is enforced.
type ReportStatus string

const (
	StatusReported    ReportStatus = "reported"
	StatusUnderReview ReportStatus = "under_review"
	StatusInProgress  ReportStatus = "in_progress"
	StatusResolved    ReportStatus = "resolved"
	StatusRejected    ReportStatus = "rejected"
)

// AllStatuses lists every known report status, in lifecycle order.
var AllStatuses = []ReportStatus{
	StatusReported,
	StatusUnderReview,
	StatusInProgress,
	StatusResolved,
	StatusRejected,
}

// Valid reports whether s is one of the known statuses.
func (s ReportStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ReportCategory classifies the kind of civic issue being reported.
type ReportCategory string

const (
	CategoryRoadDamage     ReportCategory = "road_damage"
	CategoryWaterSupply    ReportCategory = "water_supply"
	CategorySanitation     ReportCategory = "sanitation"
	CategoryElectricity    ReportCategory = "electricity"
	CategoryFlooding       ReportCategory = "flooding"
	CategoryIllegalDumping ReportCategory = "illegal_dumping"
	CategoryStreetlight    ReportCategory = "streetlight"
	CategoryOther          ReportCategory = "other"
)

// AllCategories lists every known report category.
var AllCategories = []ReportCategory{
	CategoryRoadDamage,
	CategoryWaterSupply,
	CategorySanitation,
	CategoryElectricity,
	CategoryFlooding,
	CategoryIllegalDumping,
	CategoryStreetlight,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c ReportCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Report is a citizen-submitted record of a local civic issue.
type Report struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    ReportCategory `gorm:"size:32;not null;index" json:"category"`
	Status      ReportStatus   `gorm:"size:32;not null;index;default:reported" json:"status"`

	// Location
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	Address   string  `gorm:"size:300" json:"address,omitempty"`

	// Media, hosted on the external image store
	ImageURL      string `gorm:"size:500" json:"image_url,omitempty"`
	ImagePublicID string `gorm:"size:200" json:"-"`

	ResolutionNotes string `gorm:"type:text" json:"resolution_notes,omitempty"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	Author *User `gorm:"foreignKey:UserID" json:"-"`

	// AuthorName is derived from the Author relation for API responses.
	AuthorName string `gorm:"-" json:"author_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
