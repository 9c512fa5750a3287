// Package entity defines the domain models for the feedback feature.
package entity

import "time"

// Type classifies a feedback submission.
type Type string

const (
	TypeComplaint  Type = "complaint"
	TypeSuggestion Type = "suggestion"
	TypeCompliment Type = "compliment"
	TypeQuestion   Type = "question"
)

// Valid reports whether t is a known feedback type.
func (t Type) Valid() bool {
	switch t {
	case TypeComplaint, TypeSuggestion, TypeCompliment, TypeQuestion:
		return true
	}
	return false
}

// Status is the review state of a submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusResolved Status = "resolved"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResolved:
		return true
	}
	return false
}

// Feedback is a message left by a visitor. Anonymous submissions never carry a name or email.
type Feedback struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Name          *string   `gorm:"type:text" json:"name"`
	Email         *string   `gorm:"type:text" json:"email"`
	FeedbackType  Type      `gorm:"size:20;not null" json:"feedbackType"`
	Location      *string   `gorm:"type:text" json:"location"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	IsAnonymous   bool      `gorm:"not null;default:false" json:"isAnonymous"`
	Status        Status    `gorm:"size:20;not null;default:pending" json:"status"`
	AdminResponse *string   `gorm:"type:text" json:"adminResponse"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName keeps the singular table name.
func (Feedback) TableName() string { return "feedback" }
