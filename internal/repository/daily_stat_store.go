package repository

import (
	"context"

	"gorm.io/gorm"

	"linkshort-go/internal/model"
)

// DailyStatStore daily_stats 表的访问层
type DailyStatStore struct {
	db *gorm.DB
}

func NewDailyStatStore(db *gorm.DB) *DailyStatStore {
	return &DailyStatStore{db: db}
}

// Upsert 写入或更新某链接某天的 PV/UV
func (s *DailyStatStore) Upsert(ctx context.Context, linkID, date string, pv, uv int64) error {
	stat := model.DailyStat{
		LinkID: linkID,
		Date:   date,
		PV:     pv,
		UV:     uv,
	}
	err := s.db.WithContext(ctx).
		Where("link_id = ? AND date = ?", linkID, date).
		Assign("pv", pv, "uv", uv).
		FirstOrCreate(&stat).Error
	if err != nil {
		return classifyDBError("upsert daily stat", err)
	}
	return nil
}

// ListByLink 查询某链接的每日汇总，日期倒序
func (s *DailyStatStore) ListByLink(ctx context.Context, linkID string) ([]model.DailyStat, error) {
	stats := make([]model.DailyStat, 0)
	err := s.db.WithContext(ctx).
		Where("link_id = ?", linkID).
		Order("date DESC").
		Find(&stats).Error
	if err != nil {
		return nil, classifyDBError("list daily stats", err)
	}
	return stats, nil
}
