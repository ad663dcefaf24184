package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkshort-go/internal/apperrors"
	"linkshort-go/internal/repository"
	"linkshort-go/internal/service"
	"linkshort-go/pkg/utils"
	"linkshort-go/response"
)

// StatisticsHandler 访问统计查询
type StatisticsHandler struct {
	stats *service.StatisticsService
	daily *repository.DailyStatStore
}

func NewStatisticsHandler(stats *service.StatisticsService, daily *repository.DailyStatStore) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, daily: daily}
}

// GetLinkStatistics 按 (referer, user_agent) 分组的访问计数
// （GET /api/links/:id/statistics）
func (h *StatisticsHandler) GetLinkStatistics(c *gin.Context) {
	id := c.Param("id")
	if err := utils.ValidateLinkID(id); err != nil {
		_ = c.Error(apperrors.InvalidRequestError(err.Error()))
		return
	}

	counted, err := h.stats.GetLinkStatistics(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(counted, "success"))
}

// ListLinkVisits 原始访问记录，按写入顺序
// （GET /api/links/:id/visits）
func (h *StatisticsHandler) ListLinkVisits(c *gin.Context) {
	id := c.Param("id")
	if err := utils.ValidateLinkID(id); err != nil {
		_ = c.Error(apperrors.InvalidRequestError(err.Error()))
		return
	}

	visits, err := h.stats.ListLinkVisits(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(visits, "success"))
}

// GetDailyStats 定时任务落库的每日 PV/UV 汇总
// （GET /api/links/:id/daily）
func (h *StatisticsHandler) GetDailyStats(c *gin.Context) {
	id := c.Param("id")
	if err := utils.ValidateLinkID(id); err != nil {
		_ = c.Error(apperrors.InvalidRequestError(err.Error()))
		return
	}

	stats, err := h.daily.ListByLink(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(stats, "success"))
}
