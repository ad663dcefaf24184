package service

import (
	"context"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"linkshort-go/internal/metrics"
	"linkshort-go/internal/model"
	"linkshort-go/internal/repository"
)

// StatisticsService 访问统计：写入访问记录、查询原始/汇总数据
type StatisticsService struct {
	stats *repository.StatisticStore
	cache *redis.Pool // 可为 nil（测试环境）
}

func NewStatisticsService(stats *repository.StatisticStore, cache *redis.Pool) *StatisticsService {
	return &StatisticsService{stats: stats, cache: cache}
}

// RecordVisit 记录一次访问。尽力而为：写失败只记日志和计数器，
// 绝不影响重定向本身。referer / userAgent 缺失时传 nil。
func (s *StatisticsService) RecordVisit(ctx context.Context, linkID string, referer, userAgent *string, ip string) {
	opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := s.stats.Record(opCtx, linkID, referer, userAgent); err != nil {
		metrics.StatisticRecordFailures.Inc()
		zap.L().Error("Saving a new link visit failed",
			zap.String("link_id", linkID),
			zap.Error(err),
		)
		return
	}

	zap.L().Debug("Persisted new link visit",
		zap.String("link_id", linkID),
	)

	// Redis PV/UV 计数，同样尽力而为
	if s.cache != nil {
		conn := s.cache.Get()
		defer func() {
			if err := conn.Close(); err != nil {
				zap.L().Error("Failed to close Redis connection",
					zap.Error(err),
					zap.String("operation", "close"),
				)
			}
		}()

		RecordDailyPV(conn, linkID)
		RecordDailyUV(conn, linkID, ip)
		RecordTotalPV(conn, linkID)
		RecordTotalUV(conn, linkID, ip)
	}
}

// Record 直接追加一条访问记录，返回新记录 ID。
// 与 RecordVisit 不同，错误原样上抛，由调用方处理。
func (s *StatisticsService) Record(ctx context.Context, linkID string, referer, userAgent *string) (uint64, error) {
	opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.stats.Record(opCtx, linkID, referer, userAgent)
}

// ListLinkVisits 返回链接的全部原始访问记录，按 ID 升序
func (s *StatisticsService) ListLinkVisits(ctx context.Context, linkID string) ([]model.LinkStatistic, error) {
	opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.stats.ListByLink(opCtx, linkID)
}

// GetLinkStatistics 返回按 (referer, user_agent) 分组的访问计数
func (s *StatisticsService) GetLinkStatistics(ctx context.Context, linkID string) ([]model.CountedLinkStatistic, error) {
	opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	counted, err := s.stats.CountByLink(opCtx, linkID)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("Statistics for link requested",
		zap.String("link_id", linkID),
	)
	return counted, nil
}
