package model

// DefaultSettingsID 全局配置行的固定主键
const DefaultSettingsID = "DEFAULT_SETTINGS"

// Setting 全局配置，目前只存放加密后的 API key
type Setting struct {
	ID                    string `gorm:"primaryKey;size:64" json:"id"`
	EncryptedGlobalAPIKey string `gorm:"size:128;not null" json:"-"`
}
