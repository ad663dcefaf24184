package model

// Link 短链实体，ID 为随机生成的 URL-safe base64 文本
type Link struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	TargetURL string `gorm:"size:2048;not null" json:"targetUrl"`
}
