package service

import (
	"context"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"linkshort-go/internal/repository"
)

// FlushService 定时任务：把 Redis 中的每日 PV/UV 计数回写到 daily_stats 表
type FlushService struct {
	links *repository.LinkStore
	daily *repository.DailyStatStore
	cache *redis.Pool
}

func NewFlushService(links *repository.LinkStore, daily *repository.DailyStatStore, cache *redis.Pool) *FlushService {
	return &FlushService{links: links, daily: daily, cache: cache}
}

// FlushDailyStats 遍历所有链接，把当天的 Redis 计数落库
func (s *FlushService) FlushDailyStats(ctx context.Context) error {
	zap.L().Info("FlushDailyStats start")

	opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	ids, err := s.links.ListIDs(opCtx)
	cancel()
	if err != nil {
		zap.L().Error("获取链接列表失败", zap.Error(err))
		return err
	}

	today := time.Now().Format("2006-01-02")
	dateKey := time.Now().Format("20060102")

	for _, id := range ids {
		s.flushOne(ctx, id, today, dateKey)
	}

	zap.L().Info("FlushDailyStats end")
	return nil
}

func (s *FlushService) flushOne(ctx context.Context, linkID, today, dateKey string) {
	conn := s.cache.Get()
	defer func() {
		if err := conn.Close(); err != nil {
			zap.L().Error("Failed to close Redis connection",
				zap.Error(err),
				zap.String("operation", "close"),
			)
		}
	}()

	dailyPv, _ := GetDailyPv(conn, linkID, dateKey)
	dailyUv, _ := GetDailyUv(conn, linkID, dateKey)

	if dailyPv == 0 && dailyUv == 0 {
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := s.daily.Upsert(opCtx, linkID, today, dailyPv, dailyUv); err != nil {
		zap.L().Error("Failed to insert or update daily stat",
			zap.String("link_id", linkID),
			zap.String("date", today),
			zap.Int64("pv", dailyPv),
			zap.Int64("uv", dailyUv),
			zap.Error(err),
		)
	}
}
