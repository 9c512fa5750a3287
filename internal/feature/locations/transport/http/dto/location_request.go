// Package dto はlocationsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"wastemap_backend/internal/feature/locations/domain/entity"
	"wastemap_backend/internal/feature/locations/usecase"
)

// CreateLocationReq は POST /disposal-locations のリクエストボディです。
type CreateLocationReq struct {
	Name           string   `json:"name" binding:"required"`
	Description    *string  `json:"description"`
	Latitude       *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Type           string   `json:"type" binding:"required"`
	Capacity       string   `json:"capacity" binding:"required,oneof=low medium high"`
	OperatingHours string   `json:"operatingHours" binding:"required"`
}

// ToInput はリクエストをユースケース入力に変換します。
func (r CreateLocationReq) ToInput() usecase.CreateLocationInput {
	return usecase.CreateLocationInput{
		Name:           r.Name,
		Description:    r.Description,
		Latitude:       *r.Latitude,
		Longitude:      *r.Longitude,
		Type:           entity.LocationType(r.Type),
		Capacity:       entity.Capacity(r.Capacity),
		OperatingHours: r.OperatingHours,
	}
}

// UpdateLocationReq は PUT /disposal-locations/:id の部分更新ボディです。
type UpdateLocationReq struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Latitude       *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Type           *string  `json:"type"`
	Capacity       *string  `json:"capacity" binding:"omitempty,oneof=low medium high"`
	OperatingHours *string  `json:"operatingHours"`
	IsActive       *bool    `json:"isActive"`
}

// ToPatch はリクエストをLocationPatchに変換します。
func (r UpdateLocationReq) ToPatch() usecase.LocationPatch {
	p := usecase.LocationPatch{
		Name:           r.Name,
		Description:    r.Description,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		OperatingHours: r.OperatingHours,
		IsActive:       r.IsActive,
	}
	if r.Type != nil {
		t := entity.LocationType(*r.Type)
		p.Type = &t
	}
	if r.Capacity != nil {
		c := entity.Capacity(*r.Capacity)
		p.Capacity = &c
	}
	return p
}

// MessageRes is a plain acknowledgement.
type MessageRes struct {
	Message string `json:"message"`
}
