// Package adapters はlocationsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"wastemap_backend/internal/feature/locations/domain/entity"
	"wastemap_backend/internal/feature/locations/usecase"

	"gorm.io/gorm"
)

// locationGorm はLocationRepositoryインターフェースのGORM実装です。
type locationGorm struct {
	db *gorm.DB
}

var _ usecase.LocationRepository = (*locationGorm)(nil)

// NewLocationRepository は指定されたDB接続でlocationGormリポジトリの新しいインスタンスを生成します。
func NewLocationRepository(db *gorm.DB) *locationGorm {
	return &locationGorm{db: db}
}

// ListActive はアクティブな回収地点をID順に返します。typが空でなければ種別で絞り込みます。
func (r *locationGorm) ListActive(ctx context.Context, typ entity.LocationType) ([]entity.DisposalLocation, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if typ != "" {
		q = q.Where("type = ?", string(typ))
	}

	var out []entity.DisposalLocation
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountActive はアクティブな回収地点の数を返します。
func (r *locationGorm) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.DisposalLocation{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

// Create は回収地点を追加します。
func (r *locationGorm) Create(ctx context.Context, l *entity.DisposalLocation) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Update はpatchの非nilフィールドのみを更新します。
func (r *locationGorm) Update(ctx context.Context, id int64, patch usecase.LocationPatch) (*entity.DisposalLocation, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Latitude != nil {
		fields["latitude"] = *patch.Latitude
	}
	if patch.Longitude != nil {
		fields["longitude"] = *patch.Longitude
	}
	if patch.Type != nil {
		fields["type"] = string(*patch.Type)
	}
	if patch.Capacity != nil {
		fields["capacity"] = string(*patch.Capacity)
	}
	if patch.OperatingHours != nil {
		fields["operating_hours"] = *patch.OperatingHours
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	var updated entity.DisposalLocation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.DisposalLocation{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrLocationNotFound
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SoftDelete はis_activeをfalseにします。
func (r *locationGorm) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&entity.DisposalLocation{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrLocationNotFound
	}
	return nil
}
