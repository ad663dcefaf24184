package model

// LinkStatistic 一次访问事件的持久化记录。
// 记录只插入、不更新、不删除；referer / user_agent 缺失时保持 NULL，而不是空串。
type LinkStatistic struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	LinkID    string  `gorm:"size:64;not null;index" json:"linkId"`
	Referer   *string `json:"referer"`
	UserAgent *string `json:"userAgent"`

	// belongs-to 关联，生成 link_id → links.id 外键约束
	Link *Link `gorm:"foreignKey:LinkID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 与源库保持一致
func (LinkStatistic) TableName() string {
	return "link_statistics"
}

// CountedLinkStatistic 按 (referer, user_agent) 分组后的访问计数
type CountedLinkStatistic struct {
	Amount    int64   `json:"amount"`
	Referer   *string `json:"referer"`
	UserAgent *string `json:"userAgent"`
}
