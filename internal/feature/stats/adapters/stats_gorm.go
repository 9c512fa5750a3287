// Package adapters はstatsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"wastemap_backend/internal/feature/stats/domain/entity"
	"wastemap_backend/internal/feature/stats/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rowID は唯一の統計行の固定IDです。
const rowID int64 = 1

// statsGorm はStatsRepositoryインターフェースのGORM実装です。
type statsGorm struct {
	db *gorm.DB
}

var _ usecase.StatsRepository = (*statsGorm)(nil)

// NewStatsRepository は指定されたDB接続でstatsGormリポジトリの新しいインスタンスを生成します。
func NewStatsRepository(db *gorm.DB) *statsGorm {
	return &statsGorm{db: db}
}

// Get は統計行を返します。行がなければErrStatsNotFoundを返します。
func (r *statsGorm) Get(ctx context.Context) (*entity.Stats, error) {
	return find(r.db.WithContext(ctx))
}

// Upsert は統計行にpatchを適用します。行がなければデフォルト値で作成してから適用します。
// 行はIDで固定し、更新中はロックするため、同時更新でも1行のままです。
func (r *statsGorm) Upsert(ctx context.Context, patch usecase.StatsPatch) (*entity.Stats, error) {
	var out *entity.Stats
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d := entity.Defaults()
		d.ID = rowID
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&d).Error; err != nil {
			return err
		}

		s, err := find(tx.Clauses(clause.Locking{Strength: "UPDATE"}))
		if err != nil {
			return err
		}

		patch.Apply(s)
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func find(db *gorm.DB) (*entity.Stats, error) {
	var s entity.Stats
	if err := db.First(&s, rowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrStatsNotFound
		}
		return nil, err
	}
	return &s, nil
}
