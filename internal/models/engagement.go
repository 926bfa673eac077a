package models

import (
	"time"
)

// Vote records a user's upvote on a report.
// The combination of UserID and ReportID must be unique.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_report" json:"user_id"`
	ReportID  uint      `gorm:"not null;uniqueIndex:idx_user_report" json:"report_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Report Report `gorm:"foreignKey:ReportID" json:"-"`
}

// Comment is a user comment attached to a report. Comments are never edited;
// they are created and deleted only.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	UserID   uint   `gorm:"not null" json:"user_id"`
	ReportID uint   `gorm:"not null;index" json:"report_id"`

	User   *User  `gorm:"foreignKey:UserID" json:"-"`
	Report Report `gorm:"foreignKey:ReportID" json:"-"`

	// AuthorName is derived from the User relation for API responses.
	AuthorName string `gorm:"-" json:"author_name"`

	CreatedAt time.Time `json:"created_at"`
}
