package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"linkshort-go/internal/handler"
	"linkshort-go/internal/i18n"
	"linkshort-go/internal/middleware"
	"linkshort-go/internal/repository"
	"linkshort-go/internal/service"
	"linkshort-go/pkg/logging"
)

func initConfig() {
	wd, _ := os.Getwd()
	log.Printf("Loading config from: %s/config.yaml", wd)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
}

func startServer(r *gin.Engine) {
	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("Server exiting")
}

func main() {
	initConfig()

	// 初始化日志系统
	logging.InitLoggerFromConfig()
	logging.Logger.Info("Application started")

	db := repository.InitDB(logging.Logger, logging.AtomicLevel)
	redisPool := repository.NewRedisPool()
	defer func() {
		if err := redisPool.Close(); err != nil {
			logging.Logger.Warn("Redis pool close failed", zap.Error(err))
		}
	}()

	// store 层持有连接池句柄
	linkStore := repository.NewLinkStore(db)
	statisticStore := repository.NewStatisticStore(db)
	settingStore := repository.NewSettingStore(db)
	dailyStatStore := repository.NewDailyStatStore(db)

	// 首次启动时用配置中的 API key 初始化 settings 行（只存摘要）
	if bootstrapKey := viper.GetString("auth.bootstrap_api_key"); bootstrapKey != "" {
		if err := settingStore.EnsureDefault(context.Background(), middleware.HashAPIKey(bootstrapKey)); err != nil {
			logging.Logger.Fatal("Failed to bootstrap api key", zap.Error(err))
		}
	}

	linkService := service.NewLinkService(linkStore, redisPool)
	statisticsService := service.NewStatisticsService(statisticStore, redisPool)
	flushService := service.NewFlushService(linkStore, dailyStatStore, redisPool)

	linkHandler := handler.NewLinkHandler(linkService, statisticsService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, dailyStatStore)

	// 初始化 i18n（加载 TOML 文件）
	bundle, err := i18n.InitI18n([]string{
		"./i18n/en.toml",
		"./i18n/zh.toml",
	}, "en")
	if err != nil {
		panic(err)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// 注册全局错误中间件
	r.Use(middleware.GlobalErrorMiddleware())
	r.Use(middleware.ZapGinLogger(logging.Logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.I18nMiddleware(bundle))

	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 管理 API 需要 x-api-key
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(settingStore))
	{
		api.POST("/links", linkHandler.Create)
		api.GET("/links", linkHandler.List)
		api.PATCH("/links/:id", linkHandler.Update)
		api.GET("/links/:id/statistics", statisticsHandler.GetLinkStatistics)
		api.GET("/links/:id/visits", statisticsHandler.ListLinkVisits)
		api.GET("/links/:id/daily", statisticsHandler.GetDailyStats)
	}

	// 其余 GET 请求一律按短链 ID 解析并重定向
	r.NoRoute(linkHandler.Redirect)

	c := cron.New()

	// 定时任务：每十分钟把 Redis 计数回写数据库
	flushCron := viper.GetString("stats.flush_cron")
	if flushCron == "" {
		flushCron = "*/10 * * * *"
	}
	_, addErr := c.AddFunc(flushCron, func() {
		if err := flushService.FlushDailyStats(context.Background()); err != nil {
			logging.Logger.Error("Failed to flush daily stats via cron job", zap.Error(err))
		}
	})
	if addErr != nil {
		logging.Logger.Fatal("Failed to schedule cron job", zap.Error(addErr))
	}
	c.Start()

	startServer(r)
}
