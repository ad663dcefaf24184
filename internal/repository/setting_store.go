package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"linkshort-go/internal/model"
)

// SettingStore settings 表的访问层
type SettingStore struct {
	db *gorm.DB
}

func NewSettingStore(db *gorm.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get 读取全局配置行，不存在时返回 (nil, nil)
func (s *SettingStore) Get(ctx context.Context) (*model.Setting, error) {
	var setting model.Setting
	err := s.db.WithContext(ctx).
		Where("id = ?", model.DefaultSettingsID).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classifyDBError("get settings", err)
	}
	return &setting, nil
}

// EnsureDefault 配置行不存在时写入初始 API key 摘要，已存在则不动
func (s *SettingStore) EnsureDefault(ctx context.Context, encryptedAPIKey string) error {
	setting := model.Setting{
		ID:                    model.DefaultSettingsID,
		EncryptedGlobalAPIKey: encryptedAPIKey,
	}
	err := s.db.WithContext(ctx).
		Where("id = ?", model.DefaultSettingsID).
		FirstOrCreate(&setting).Error
	if err != nil {
		return classifyDBError("ensure settings", err)
	}
	return nil
}
