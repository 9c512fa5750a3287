// Package dto はeventsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"wastemap_backend/internal/feature/events/domain/entity"
	"wastemap_backend/internal/feature/events/usecase"
)

// CreateEventReq は POST /events のリクエストボディです。
type CreateEventReq struct {
	Title           string    `json:"title" binding:"required,max=255"`
	Description     *string   `json:"description"`
	EventDate       time.Time `json:"eventDate" binding:"required"`
	Location        *string   `json:"location" binding:"omitempty,max=255"`
	EventType       string    `json:"eventType" binding:"required,oneof=cleanup workshop competition"`
	MaxParticipants *int      `json:"maxParticipants" binding:"omitempty,min=0"`
	ImageURL        *string   `json:"imageUrl"`
}

// ToInput はリクエストをユースケース入力に変換します。
func (r CreateEventReq) ToInput() usecase.CreateEventInput {
	return usecase.CreateEventInput{
		Title:           r.Title,
		Description:     r.Description,
		EventDate:       r.EventDate,
		Location:        r.Location,
		EventType:       entity.EventType(r.EventType),
		MaxParticipants: r.MaxParticipants,
		ImageURL:        r.ImageURL,
	}
}

// UpdateEventReq は PUT /events/:id の部分更新ボディです。省略されたフィールドは変更しません。
type UpdateEventReq struct {
	Title           *string    `json:"title" binding:"omitempty,max=255"`
	Description     *string    `json:"description"`
	EventDate       *time.Time `json:"eventDate"`
	Location        *string    `json:"location" binding:"omitempty,max=255"`
	EventType       *string    `json:"eventType" binding:"omitempty,oneof=cleanup workshop competition"`
	MaxParticipants *int       `json:"maxParticipants" binding:"omitempty,min=0"`
	ImageURL        *string    `json:"imageUrl"`
	IsActive        *bool      `json:"isActive"`
}

// ToPatch はリクエストをEventPatchに変換します。
func (r UpdateEventReq) ToPatch() usecase.EventPatch {
	p := usecase.EventPatch{
		Title:           r.Title,
		Description:     r.Description,
		EventDate:       r.EventDate,
		Location:        r.Location,
		MaxParticipants: r.MaxParticipants,
		ImageURL:        r.ImageURL,
		IsActive:        r.IsActive,
	}
	if r.EventType != nil {
		t := entity.EventType(*r.EventType)
		p.EventType = &t
	}
	return p
}
