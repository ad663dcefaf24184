package repository

import (
	"context"

	"gorm.io/gorm"

	"linkshort-go/internal/model"
)

// StatisticStore link_statistics 表的访问层。
// 记录只追加不修改；每次调用独立成事务，互不阻塞。
type StatisticStore struct {
	db *gorm.DB
}

func NewStatisticStore(db *gorm.DB) *StatisticStore {
	return &StatisticStore{db: db}
}

// Record 追加一条访问记录，返回数据库分配的自增 ID。
// referer / userAgent 传 nil 表示缺失，落库为 NULL。
// link_id 不存在时由外键约束拒绝，返回 KindIntegrity 错误。
func (s *StatisticStore) Record(ctx context.Context, linkID string, referer, userAgent *string) (uint64, error) {
	stat := model.LinkStatistic{
		LinkID:    linkID,
		Referer:   referer,
		UserAgent: userAgent,
	}
	if err := s.db.WithContext(ctx).Create(&stat).Error; err != nil {
		return 0, classifyDBError("record statistic", err)
	}
	return stat.ID, nil
}

// ListByLink 返回指定链接的全部访问记录，按 ID 升序。
// 未知链接不报错，返回空切片。
func (s *StatisticStore) ListByLink(ctx context.Context, linkID string) ([]model.LinkStatistic, error) {
	stats := make([]model.LinkStatistic, 0)
	err := s.db.WithContext(ctx).
		Where("link_id = ?", linkID).
		Order("id ASC").
		Find(&stats).Error
	if err != nil {
		return nil, classifyDBError("list statistics", err)
	}
	return stats, nil
}

// CountByLink 按 (referer, user_agent) 分组统计访问次数
func (s *StatisticStore) CountByLink(ctx context.Context, linkID string) ([]model.CountedLinkStatistic, error) {
	counted := make([]model.CountedLinkStatistic, 0)
	err := s.db.WithContext(ctx).
		Model(&model.LinkStatistic{}).
		Select("count(*) as amount, referer, user_agent").
		Where("link_id = ?", linkID).
		Group("referer, user_agent").
		Scan(&counted).Error
	if err != nil {
		return nil, classifyDBError("count statistics", err)
	}
	return counted, nil
}
