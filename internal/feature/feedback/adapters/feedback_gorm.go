// Package adapters はfeedbackフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"wastemap_backend/internal/feature/feedback/domain/entity"
	"wastemap_backend/internal/feature/feedback/usecase"

	"gorm.io/gorm"
)

// feedbackGorm はFeedbackRepositoryインターフェースのGORM実装です。
type feedbackGorm struct {
	db *gorm.DB
}

var _ usecase.FeedbackRepository = (*feedbackGorm)(nil)

// NewFeedbackRepository は指定されたDB接続でfeedbackGormリポジトリの新しいインスタンスを生成します。
func NewFeedbackRepository(db *gorm.DB) *feedbackGorm {
	return &feedbackGorm{db: db}
}

// Create はフィードバックを追加します。
func (r *feedbackGorm) Create(ctx context.Context, f *entity.Feedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// List は作成日時の降順ですべてのフィードバックを返します。
func (r *feedbackGorm) List(ctx context.Context) ([]entity.Feedback, error) {
	return r.ListRecent(ctx, -1)
}

// ListRecent は新しい順に最大limit件を返します。limitが負の場合は全件です。
func (r *feedbackGorm) ListRecent(ctx context.Context, limit int) ([]entity.Feedback, error) {
	var out []entity.Feedback
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count はフィードバックの総数を返します。
func (r *feedbackGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Feedback{}).Count(&n).Error
	return n, err
}

// UpdateStatus はステータスと、responseがnilでなければ管理者の返答を更新します。
func (r *feedbackGorm) UpdateStatus(ctx context.Context, id int64, status entity.Status, response *string) (*entity.Feedback, error) {
	fields := map[string]any{"status": string(status)}
	if response != nil {
		fields["admin_response"] = *response
	}

	var updated entity.Feedback
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Feedback{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrFeedbackNotFound
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
