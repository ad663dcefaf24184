package constant

import (
	"fmt"
	"time"
)

// 常量定义
const (
	BasePrefix = "link:"
	Separator  = ":"
)

// Redis 键模板
const (
	LinkCache = BasePrefix + "cache:%s"
	DailyPV   = BasePrefix + "pv" + Separator + "%s"                    // link:pv:yyyyMMdd
	DailyUV   = BasePrefix + "uv" + Separator + "%s" + Separator + "%s" // link:uv:yyyyMMdd:linkid
	TotalPV   = BasePrefix + "total_pv" + Separator + "%s"              // link:total_pv:linkid
	TotalUV   = BasePrefix + "total_uv" + Separator + "%s"              // link:total_uv:linkid
)

// GetLinkCacheKey 生成链接解析缓存 key
func GetLinkCacheKey(linkID string) string {
	return fmt.Sprintf(LinkCache, linkID)
}

// GetDateKey 生成当前日期的键（格式：yyyyMMdd）
func GetDateKey() string {
	return time.Now().Format("20060102")
}

// GetDailyPVKey 生成每日 PV 键（格式：link:pv:yyyyMMdd）
func GetDailyPVKey(date string) string {
	return fmt.Sprintf(DailyPV, date)
}

// GetDailyUVKey 生成每日 UV 键（格式：link:uv:yyyyMMdd:linkid）
func GetDailyUVKey(linkID, date string) string {
	return fmt.Sprintf(DailyUV, date, linkID)
}

// GetTotalPVKey 生成总 PV 键（格式：link:total_pv:linkid）
func GetTotalPVKey(linkID string) string {
	return fmt.Sprintf(TotalPV, linkID)
}

// GetTotalUVKey 生成总 UV 键（格式：link:total_uv:linkid）
func GetTotalUVKey(linkID string) string {
	return fmt.Sprintf(TotalUV, linkID)
}
