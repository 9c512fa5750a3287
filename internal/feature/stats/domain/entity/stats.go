// Package entity defines the domain models for the stats feature.
package entity

import "time"

// Default values shown before an admin has saved any stats.
const (
	DefaultMonthlyWaste   = "0T"
	DefaultRecyclableRate = "0%"
	DefaultActiveUsers    = "0"
)

// Stats is the single row of headline numbers on the landing page.
// The text fields are display strings such as "12T" or "45%".
type Stats struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	DisposalPoints int       `gorm:"not null;default:0" json:"disposalPoints"`
	MonthlyWaste   string    `gorm:"type:text;not null;default:0T" json:"monthlyWaste"`
	RecyclableRate string    `gorm:"type:text;not null;default:0%" json:"recyclableRate"`
	ActiveUsers    string    `gorm:"type:text;not null;default:0" json:"activeUsers"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName keeps the singular table name.
func (Stats) TableName() string { return "stats" }

// Defaults returns the values reported when no row exists.
func Defaults() Stats {
	return Stats{
		MonthlyWaste:   DefaultMonthlyWaste,
		RecyclableRate: DefaultRecyclableRate,
		ActiveUsers:    DefaultActiveUsers,
	}
}
