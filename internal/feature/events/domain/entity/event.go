// Package entity defines the domain models for the events feature.
package entity

import "time"

// EventType is the kind of community event.
type EventType string

const (
	EventTypeCleanup     EventType = "cleanup"
	EventTypeWorkshop    EventType = "workshop"
	EventTypeCompetition EventType = "competition"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeCleanup, EventTypeWorkshop, EventTypeCompetition:
		return true
	}
	return false
}

// DefaultMaxParticipants is stored when an event is created without a capacity.
const DefaultMaxParticipants = 50

// Event is a community event that people can join until it is full.
// CurrentParticipants only changes through a join and never exceeds MaxParticipants.
// A nil or zero MaxParticipants means the event accepts nobody.
type Event struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	Title               string    `gorm:"size:255;not null" json:"title"`
	Description         *string   `gorm:"type:text" json:"description"`
	EventDate           time.Time `gorm:"not null;index" json:"eventDate"`
	Location            *string   `gorm:"size:255" json:"location"`
	EventType           EventType `gorm:"size:50;not null" json:"eventType"`
	MaxParticipants     *int      `json:"maxParticipants"`
	CurrentParticipants int       `gorm:"not null;default:0" json:"currentParticipants"`
	ImageURL            *string   `gorm:"size:1024" json:"imageUrl"`
	IsActive            bool      `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Capacity returns the effective maximum.
func (e *Event) Capacity() int {
	if e.MaxParticipants == nil {
		return 0
	}
	return *e.MaxParticipants
}

// Full reports whether a join would exceed the capacity.
func (e *Event) Full() bool {
	return e.CurrentParticipants >= e.Capacity()
}
