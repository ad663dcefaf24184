package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"linkshort-go/internal/apperrors"
	"linkshort-go/internal/model"
)

// LinkStore links 表的访问层
type LinkStore struct {
	db *gorm.DB
}

func NewLinkStore(db *gorm.DB) *LinkStore {
	return &LinkStore{db: db}
}

// Create 插入一条新链接；ID 冲突时返回 KindConflict，由服务层换 ID 重试
func (s *LinkStore) Create(ctx context.Context, link *model.Link) error {
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		return classifyDBError("create link", err)
	}
	return nil
}

// FindByID 按 ID 查询链接，不存在时返回 (nil, nil)
func (s *LinkStore) FindByID(ctx context.Context, id string) (*model.Link, error) {
	var link model.Link
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classifyDBError("find link", err)
	}
	return &link, nil
}

// UpdateTarget 更新目标 URL，链接不存在时返回 404 业务错误
func (s *LinkStore) UpdateTarget(ctx context.Context, id, targetURL string) (*model.Link, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ?", id).
		Update("target_url", targetURL)
	if result.Error != nil {
		return nil, classifyDBError("update link", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.BusinessError(404, "链接不存在")
	}
	return &model.Link{ID: id, TargetURL: targetURL}, nil
}

// List 分页查询链接，支持按 ID 前缀模糊过滤，返回 (记录, 总数)
func (s *LinkStore) List(ctx context.Context, page, size int, idFilter string) ([]model.Link, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.Link{})
	if idFilter != "" {
		db = db.Where("id LIKE ?", idFilter+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, classifyDBError("count links", err)
	}

	links := make([]model.Link, 0)
	if total == 0 {
		return links, 0, nil
	}

	err := db.
		Limit(size).
		Offset((page - 1) * size).
		Order("id ASC").
		Find(&links).Error
	if err != nil {
		return nil, 0, classifyDBError("list links", err)
	}
	return links, total, nil
}

// ListIDs 返回全部链接 ID，供定时统计任务遍历
func (s *LinkStore) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&model.Link{}).Pluck("id", &ids).Error; err != nil {
		return nil, classifyDBError("list link ids", err)
	}
	return ids, nil
}
