package utils

import (
	"encoding/base64"
	"math/rand/v2"
	"strconv"
)

// GenerateLinkID 生成随机链接 ID：随机 uint32 的十进制字符串做 URL-safe base64（无 padding）。
// 碰撞交给数据库唯一约束兜底，调用方负责重试。
func GenerateLinkID() string {
	n := rand.Uint32()
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(n), 10)))
}
