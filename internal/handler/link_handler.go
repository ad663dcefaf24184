package handler

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"linkshort-go/internal/apperrors"
	"linkshort-go/internal/dto"
	"linkshort-go/internal/i18n"
	"linkshort-go/internal/service"
	"linkshort-go/response"
)

// 重定向响应的缓存策略，与 CDN 的 stale 语义配合
const defaultCacheControlHeaderValue = "public, max-age=300, s-maxage=300, stale-while-revalidate=300, stale-if-error=300"

// LinkHandler 链接管理与重定向
type LinkHandler struct {
	links *service.LinkService
	stats *service.StatisticsService
}

func NewLinkHandler(links *service.LinkService, stats *service.StatisticsService) *LinkHandler {
	return &LinkHandler{links: links, stats: stats}
}

// Create 创建短链（POST /api/links）
func (h *LinkHandler) Create(c *gin.Context) {
	var req dto.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, req, err)
		return
	}

	if err := req.Validate(); err != nil {
		// 校验错误返回的是 i18n key，按请求语言取文案
		_ = c.Error(apperrors.InvalidRequestError(i18n.T(c.Request.Context(), err.Error(), nil)))
		return
	}

	link, err := h.links.CreateLink(c.Request.Context(), req.TargetURL)
	if err != nil {
		zap.L().Warn("Link creation failed",
			zap.Error(err),
			zap.String("target_url", req.TargetURL),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, okMessage(c, link, "message.link_created"))
}

// List 分页查询短链列表（GET /api/links?page=1&size=10&id=xxx）
func (h *LinkHandler) List(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("size", "10")
	idFilter := c.Query("id")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		_ = c.Error(apperrors.InvalidRequestError("页码必须为正整数"))
		return
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > 100 {
		_ = c.Error(apperrors.InvalidRequestError("每页数量必须为1-100之间的整数"))
		return
	}

	pageResp, err := h.links.ListLinks(c.Request.Context(), page, size, idFilter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(pageResp, "success"))
}

// Update 更新短链目标地址（PATCH /api/links/:id）
func (h *LinkHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, req, err)
		return
	}

	link, err := h.links.UpdateLink(c.Request.Context(), id, req.TargetURL)
	if err != nil {
		zap.L().Warn("Link update failed",
			zap.Error(err),
			zap.String("id", id),
			zap.String("target_url", req.TargetURL),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, okMessage(c, link, "message.link_updated"))
}

// Redirect 解析短链并 307 跳转，同时尽力记录一条访问统计。
// 注册为 NoRoute 处理器，路径即链接 ID。
func (h *LinkHandler) Redirect(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.Status(http.StatusNotFound)
		return
	}

	id := strings.TrimPrefix(c.Request.URL.Path, "/")

	link, ok := h.links.ResolveLink(c.Request.Context(), id)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	// 缺失的请求头记为 NULL，不落空串
	var referer, userAgent *string
	if v := c.Request.Referer(); v != "" {
		referer = &v
	}
	if v := c.Request.UserAgent(); v != "" {
		userAgent = &v
	}

	h.stats.RecordVisit(c.Request.Context(), link.ID, referer, userAgent, c.ClientIP())

	zap.L().Debug("Redirecting link",
		zap.String("id", link.ID),
		zap.String("target_url", link.TargetURL),
	)

	c.Header("Cache-Control", defaultCacheControlHeaderValue)
	c.Redirect(http.StatusTemporaryRedirect, link.TargetURL)
}

// bindError 把绑定失败翻译成参数错误；优先取字段上的 msg 标签
func bindError(c *gin.Context, req interface{}, err error) {
	zap.L().Warn("Request body binding failed",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			// 通过反射获取字段的 msg 标签值
			field, ok := reflect.TypeOf(req).FieldByName(e.Field())
			if !ok {
				continue
			}
			if customMsg := field.Tag.Get("msg"); customMsg != "" {
				_ = c.Error(apperrors.InvalidRequestError(customMsg))
				return
			}
		}
	}

	_ = c.Error(apperrors.InvalidRequestErrorDefault())
}

// okMessage 构造带本地化文案的成功响应
func okMessage[T any](c *gin.Context, data T, messageKey string) *response.Response[T] {
	msg := i18n.T(c.Request.Context(), messageKey, nil)
	return response.OK(data, msg)
}
