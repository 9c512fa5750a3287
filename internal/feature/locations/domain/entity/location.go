// Package entity defines the domain models for the locations feature.
package entity

import "time"

// LocationType is the waste stream a disposal point accepts.
type LocationType string

const (
	TypeGeneral  LocationType = "general wastes"
	TypeChemical LocationType = "chemical wastes"
	TypePaper    LocationType = "paper wastes"
	TypeE        LocationType = "e wastes"
)

// Valid reports whether t is a known location type.
func (t LocationType) Valid() bool {
	switch t {
	case TypeGeneral, TypeChemical, TypePaper, TypeE:
		return true
	}
	return false
}

// Capacity is a coarse size of the disposal point.
type Capacity string

const (
	CapacityLow    Capacity = "low"
	CapacityMedium Capacity = "medium"
	CapacityHigh   Capacity = "high"
)

// Valid reports whether c is a known capacity.
func (c Capacity) Valid() bool {
	switch c {
	case CapacityLow, CapacityMedium, CapacityHigh:
		return true
	}
	return false
}

// DisposalLocation is a point on the campus map where waste can be dropped off.
// Deleting a location only clears IsActive.
type DisposalLocation struct {
	ID             int64        `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"type:text;not null" json:"name"`
	Description    *string      `gorm:"type:text" json:"description"`
	Latitude       float64      `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude      float64      `gorm:"type:decimal(11,8);not null" json:"longitude"`
	Type           LocationType `gorm:"size:50;not null;index" json:"type"`
	Capacity       Capacity     `gorm:"size:20;not null" json:"capacity"`
	OperatingHours string       `gorm:"type:text;not null" json:"operatingHours"`
	IsActive       bool         `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
