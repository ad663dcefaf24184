package repository

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"linkshort-go/internal/model"
	"linkshort-go/pkg/logging"
)

// InitDB 建立 Postgres 连接并执行迁移。
// 返回连接池句柄，由各个 store 持有，不保留包级单例。
func InitDB(logger *zap.Logger, atomicLogLevel zap.AtomicLevel) *gorm.DB {
	dsn := viper.GetString("db.dsn")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logging.NewGormLogger(logger, logging.ToGormLogLevel(atomicLogLevel.Level())),
	})
	if err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	return db
}

// Migrate 创建/更新全部表结构，含 link_statistics 的外键约束与 link_id 索引
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Link{},
		&model.LinkStatistic{},
		&model.Setting{},
		&model.DailyStat{},
	)
}
