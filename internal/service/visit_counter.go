package service

import (
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"linkshort-go/constant"
)

// RecordDailyPV 记录每日 PV
func RecordDailyPV(conn redis.Conn, linkID string) {
	dailyPvKey := constant.GetDailyPVKey(constant.GetDateKey())

	_, err := conn.Do("HINCRBY", dailyPvKey, linkID, 1)
	if err != nil {
		zap.L().Error("Failed to record daily PV",
			zap.String("key", dailyPvKey),
			zap.String("link_id", linkID),
			zap.Error(err))
	}

	_, err = conn.Do("EXPIRE", dailyPvKey, 3*24*3600) // 3天过期
	if err != nil {
		zap.L().Error("Failed to record daily PV Expire",
			zap.String("key", dailyPvKey),
			zap.String("link_id", linkID),
			zap.Error(err))
	}
}

// RecordDailyUV 记录每日 UV
func RecordDailyUV(conn redis.Conn, linkID string, ip string) {
	dailyUvKey := constant.GetDailyUVKey(linkID, constant.GetDateKey())

	_, err := conn.Do("PFADD", dailyUvKey, ip)
	if err != nil {
		zap.L().Error("Failed to record daily UV",
			zap.String("key", dailyUvKey),
			zap.String("ip", ip),
			zap.Error(err))
	}

	_, err = conn.Do("EXPIRE", dailyUvKey, 3*24*3600) // 3天过期
	if err != nil {
		zap.L().Error("Failed to record daily UV Expire",
			zap.String("key", dailyUvKey),
			zap.String("link_id", linkID),
			zap.Error(err))
	}
}

// RecordTotalPV 记录总 PV
func RecordTotalPV(conn redis.Conn, linkID string) {
	totalPvKey := constant.GetTotalPVKey(linkID)
	_, err := conn.Do("INCR", totalPvKey)
	if err != nil {
		zap.L().Error("Failed to record total PV",
			zap.String("key", totalPvKey),
			zap.String("link_id", linkID),
			zap.Error(err))
	}
}

// RecordTotalUV 记录总 UV
func RecordTotalUV(conn redis.Conn, linkID string, ip string) {
	totalUvKey := constant.GetTotalUVKey(linkID)
	_, err := conn.Do("PFADD", totalUvKey, ip)
	if err != nil {
		zap.L().Error("Failed to record total UV",
			zap.String("key", totalUvKey),
			zap.String("ip", ip),
			zap.Error(err))
	}
}

// GetDailyPv 获取某日期的链接访问量（PV）
func GetDailyPv(conn redis.Conn, linkID string, date string) (int64, error) {
	dailyPvKey := constant.GetDailyPVKey(date)

	reply, err := conn.Do("HGET", dailyPvKey, linkID)
	if err != nil {
		zap.L().Error("Failed to get daily PV",
			zap.String("key", dailyPvKey),
			zap.String("link_id", linkID),
			zap.Error(err))
		return 0, err
	}

	result, err := redis.Int64(reply, err)
	if err != nil {
		return 0, err
	}

	return result, nil
}

// GetDailyUv 获取某日期的链接独立访客数（UV）
func GetDailyUv(conn redis.Conn, linkID string, date string) (int64, error) {
	dailyUvKey := constant.GetDailyUVKey(linkID, date)

	// PFCOUNT 查询 HyperLogLog 的基数
	reply, err := conn.Do("PFCOUNT", dailyUvKey)
	if err != nil {
		zap.L().Error("Failed to get daily UV",
			zap.String("key", dailyUvKey),
			zap.String("link_id", linkID),
			zap.Error(err))
		return 0, err
	}

	result, err := redis.Int64(reply, err)
	if err != nil {
		return 0, err
	}

	return result, nil
}
