package models

import "time"

// Link is a persisted mapping from a full URL to its short code.
// ShortURL is NULL only inside the transaction that creates the row.
type Link struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	FullURL       string    `gorm:"uniqueIndex;not null" json:"full_url"`
	ShortURL      string    `gorm:"uniqueIndex;size:16;default:null" json:"short_url"`
	CountRequests uint64    `gorm:"not null;default:0" json:"count_requests"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
