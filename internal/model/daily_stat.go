package model

import "time"

// DailyStat 定时任务从 Redis 回写的每日访问汇总
type DailyStat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LinkID    string    `gorm:"size:64;index" json:"linkId"`
	Date      string    `gorm:"type:date;index" json:"date"` // YYYY-MM-DD
	PV        int64     `gorm:"default:0" json:"pv"`
	UV        int64     `gorm:"default:0" json:"uv"`
	UpdatedAt time.Time `json:"updatedAt"`
}
