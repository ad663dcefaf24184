package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"linkshort-go/constant"
	"linkshort-go/internal/apperrors"
	"linkshort-go/internal/metrics"
	"linkshort-go/internal/model"
	"linkshort-go/internal/repository"
	"linkshort-go/pkg/utils"
	"linkshort-go/response"
)

// 单次数据库操作的超时，超过即按存储不可用处理
const queryTimeout = 300 * time.Millisecond

// 生成唯一 ID 的最大尝试次数
const maxIDAttempts = 3

// LinkService 链接的创建、更新与解析
type LinkService struct {
	links *repository.LinkStore
	cache *redis.Pool // 可为 nil（测试环境），为 nil 时直接走数据库
}

func NewLinkService(links *repository.LinkStore, cache *redis.Pool) *LinkService {
	return &LinkService{links: links, cache: cache}
}

// CreateLink 生成随机 ID 并插入；ID 撞上唯一约束时换一个重试，最多 maxIDAttempts 次
func (s *LinkService) CreateLink(ctx context.Context, targetURL string) (*model.Link, error) {
	if err := utils.ValidateTargetURL(targetURL); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		link := &model.Link{
			ID:        utils.GenerateLinkID(),
			TargetURL: targetURL,
		}

		opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
		err := s.links.Create(opCtx, link)
		cancel()

		if err == nil {
			zap.L().Debug("Created new link",
				zap.String("id", link.ID),
				zap.String("target_url", targetURL),
			)
			return link, nil
		}

		if apperrors.IsKind(err, apperrors.KindConflict) {
			// ID 撞车，重新生成
			continue
		}
		return nil, err
	}

	zap.L().Error("Could not persist new short link. Exhausted all retries of generating a unique id")
	metrics.SavingLinkImpossible.Inc()
	return nil, apperrors.SystemErrorDefault()
}

// ListLinks 分页查询链接列表
func (s *LinkService) ListLinks(ctx context.Context, page, size int, idFilter string) (*response.PageResponse[model.Link], error) {
	// 参数校验
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10 // 默认每页10条，最大100条
	}

	opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	links, total, err := s.links.List(opCtx, page, size, idFilter)
	if err != nil {
		return nil, err
	}

	totalPage := (int(total) + size - 1) / size

	return &response.PageResponse[model.Link]{
		Page:      page,
		Size:      size,
		Total:     int(total),
		TotalPage: totalPage,
		List:      links,
	}, nil
}

// UpdateLink 更新目标 URL 并使缓存失效
func (s *LinkService) UpdateLink(ctx context.Context, id, targetURL string) (*model.Link, error) {
	if err := utils.ValidateTargetURL(targetURL); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	link, err := s.links.UpdateTarget(opCtx, id, targetURL)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(id)

	zap.L().Debug("Updated link",
		zap.String("id", id),
		zap.String("target_url", targetURL),
	)
	return link, nil
}

// ResolveLink 解析链接：先查 Redis 缓存，未命中再查数据库。
// 数据库查不到时缓存空值 5 分钟，防止缓存穿透。
func (s *LinkService) ResolveLink(ctx context.Context, id string) (*model.Link, bool) {
	if err := utils.ValidateLinkID(id); err != nil {
		return nil, false
	}

	if s.cache == nil {
		return s.resolveFromDB(ctx, id, nil)
	}

	cacheKey := constant.GetLinkCacheKey(id)

	conn := s.cache.Get()
	defer func() {
		if err := conn.Close(); err != nil {
			zap.L().Error("Failed to close Redis connection",
				zap.Error(err),
				zap.String("operation", "close"),
			)
		}
	}()

	cachedValue, err := redis.Bytes(conn.Do("GET", cacheKey))
	if err == nil {
		if string(cachedValue) == "" {
			// 命中空值缓存
			return nil, false
		}
		var link model.Link
		if err := json.Unmarshal(cachedValue, &link); err == nil {
			return &link, true
		}
		zap.L().Warn("Failed to unmarshal cached link",
			zap.String("cache_key", cacheKey),
			zap.Error(err),
		)
	} else if err != redis.ErrNil {
		zap.L().Warn("Error getting link from Redis",
			zap.String("cache_key", cacheKey),
			zap.Error(err),
		)
	}

	return s.resolveFromDB(ctx, id, conn)
}

func (s *LinkService) resolveFromDB(ctx context.Context, id string, conn redis.Conn) (*model.Link, bool) {
	opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	link, err := s.links.FindByID(opCtx, id)
	if err != nil {
		zap.L().Error("Failed to resolve link",
			zap.String("id", id),
			zap.Error(err),
		)
		return nil, false
	}

	cacheKey := constant.GetLinkCacheKey(id)

	if link == nil {
		// 缓存空值，防止缓存穿透
		if conn != nil {
			if _, err := conn.Do("SET", cacheKey, "", "EX", 300); err != nil {
				zap.L().Error("设置缓存失败",
					zap.String("cache_key", cacheKey),
					zap.Error(err),
				)
			}
		}
		return nil, false
	}

	// 缓存结果（1小时）
	if conn != nil {
		cachedValue, _ := json.Marshal(link)
		if _, err := conn.Do("SET", cacheKey, cachedValue, "EX", 3600); err != nil {
			zap.L().Error("设置缓存失败",
				zap.String("cache_key", cacheKey),
				zap.Error(err),
			)
		}
	}

	return link, true
}

func (s *LinkService) invalidateCache(id string) {
	if s.cache == nil {
		return
	}

	conn := s.cache.Get()
	defer func() {
		if err := conn.Close(); err != nil {
			zap.L().Error("Failed to close Redis connection",
				zap.Error(err),
				zap.String("operation", "close"),
			)
		}
	}()

	cacheKey := constant.GetLinkCacheKey(id)
	if _, err := conn.Do("DEL", cacheKey); err != nil {
		zap.L().Warn("Redis 删除缓存失败",
			zap.String("cache_key", cacheKey),
			zap.Error(err),
		)
	}
}
