// Package dto はfeedbackフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"wastemap_backend/internal/feature/feedback/domain/entity"
	"wastemap_backend/internal/feature/feedback/usecase"
)

// CreateFeedbackReq は POST /feedback のリクエストボディです。
type CreateFeedbackReq struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	FeedbackType string  `json:"feedbackType" binding:"required"`
	Location     *string `json:"location"`
	Message      string  `json:"message" binding:"required"`
	IsAnonymous  bool    `json:"isAnonymous"`
}

// ToInput はリクエストをユースケース入力に変換します。
func (r CreateFeedbackReq) ToInput() usecase.CreateFeedbackInput {
	return usecase.CreateFeedbackInput{
		Name:         r.Name,
		Email:        r.Email,
		FeedbackType: entity.Type(r.FeedbackType),
		Location:     r.Location,
		Message:      r.Message,
		IsAnonymous:  r.IsAnonymous,
	}
}

// UpdateStatusReq は PUT /feedback/:id のリクエストボディです。
// statusの値検証はユースケースで行います。
type UpdateStatusReq struct {
	Status        string `json:"status" binding:"required"`
	AdminResponse string `json:"adminResponse"`
}
