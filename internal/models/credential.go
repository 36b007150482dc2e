package models

import (
	"strings"
	"time"
)

// Credential is a named password kept as a bcrypt hash.
type Credential struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	// NormalizedName is NormalizeCredentialName(Name) and carries the unique
	// index. SQLite's lower() folds ASCII only, so it is never computed in SQL.
	NormalizedName     string `gorm:"not null"`
	PasswordHash       string `gorm:"not null"`
	MustChangePassword bool   `gorm:"not null;default:false"`
	LastVerifiedAt     *time.Time
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// NormalizeCredentialName is the case-insensitive form names are looked up
// and deduplicated by.
func NormalizeCredentialName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
