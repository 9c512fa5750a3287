// Package adapters はeventsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"wastemap_backend/internal/feature/events/domain/entity"
	"wastemap_backend/internal/feature/events/usecase"

	"gorm.io/gorm"
)

// eventGorm はEventRepositoryインターフェースのGORM実装です。
type eventGorm struct {
	db *gorm.DB
}

var _ usecase.EventRepository = (*eventGorm)(nil)

// NewEventRepository は指定されたDB接続でeventGormリポジトリの新しいインスタンスを生成します。
func NewEventRepository(db *gorm.DB) *eventGorm {
	return &eventGorm{db: db}
}

// ListActive はevent_date昇順にすべてのアクティブなイベントを返します。
func (r *eventGorm) ListActive(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("event_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListUpcoming はfrom以降のアクティブなイベントを日付順に最大limit件返します。
func (r *eventGorm) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]entity.Event, error) {
	var events []entity.Event
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND event_date >= ?", true, from).
		Order("event_date ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CountActive はアクティブなイベント数を返します。
func (r *eventGorm) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Event{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Create はイベントを追加します。
func (r *eventGorm) Create(ctx context.Context, e *entity.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Update はpatchの非nilフィールドのみを更新し、更新後のイベントを返します。
func (r *eventGorm) Update(ctx context.Context, id int64, patch usecase.EventPatch) (*entity.Event, error) {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.EventDate != nil {
		fields["event_date"] = *patch.EventDate
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.EventType != nil {
		fields["event_type"] = string(*patch.EventType)
	}
	if patch.MaxParticipants != nil {
		fields["max_participants"] = *patch.MaxParticipants
	}
	if patch.ImageURL != nil {
		fields["image_url"] = *patch.ImageURL
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	var updated entity.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Event{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrEventNotFound
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SoftDelete はis_activeをfalseにします。物理削除は行いません。
func (r *eventGorm) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&entity.Event{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrEventNotFound
	}
	return nil
}

// IncrementParticipants は定員未満の場合のみ参加者数を1増やします。
// 判定と加算を1つの条件付きUPDATEで行うため、同時参加でも定員を超えません。
// 更新行が0件の場合のみイベントを読み直し、未検出か満員かを判定します。
func (r *eventGorm) IncrementParticipants(ctx context.Context, id int64) (*entity.Event, error) {
	var updated entity.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Event{}).
			Where("id = ? AND is_active = ? AND current_participants < COALESCE(max_participants, 0)", id, true).
			Updates(map[string]any{
				"current_participants": gorm.Expr("current_participants + 1"),
				"updated_at":           time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var current entity.Event
			if err := tx.Select("id", "is_active").First(&current, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return usecase.ErrEventNotFound
				}
				return err
			}
			if !current.IsActive {
				return usecase.ErrEventNotFound
			}
			return usecase.ErrEventFull
		}

		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
