// Package dto はstatsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "wastemap_backend/internal/feature/stats/usecase"

// UpdateStatsReq は PUT /stats の部分更新ボディです。
type UpdateStatsReq struct {
	DisposalPoints *int    `json:"disposalPoints" binding:"omitempty,min=0"`
	MonthlyWaste   *string `json:"monthlyWaste" binding:"omitempty,max=32"`
	RecyclableRate *string `json:"recyclableRate" binding:"omitempty,max=32"`
	ActiveUsers    *string `json:"activeUsers" binding:"omitempty,max=32"`
}

// ToPatch はリクエストをStatsPatchに変換します。
func (r UpdateStatsReq) ToPatch() usecase.StatsPatch {
	return usecase.StatsPatch{
		DisposalPoints: r.DisposalPoints,
		MonthlyWaste:   r.MonthlyWaste,
		RecyclableRate: r.RecyclableRate,
		ActiveUsers:    r.ActiveUsers,
	}
}
