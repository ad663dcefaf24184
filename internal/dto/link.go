package dto

import (
	"github.com/gin-gonic/gin"

	"linkshort-go/pkg/utils"
)

// CreateLinkRequest 创建短链的请求参数，ID 由服务端生成
type CreateLinkRequest struct {
	TargetURL string `json:"targetUrl" binding:"required,url" msg:"targetUrl must be a valid URL"` // Gin 内置 URL 校验
}

// UpdateLinkRequest 更新短链目标地址的请求参数
type UpdateLinkRequest struct {
	TargetURL string `json:"targetUrl" binding:"required,url" msg:"targetUrl must be a valid URL"`
}

// Validate 自定义验证逻辑，复用公共的 TargetURL 校验
func (r *CreateLinkRequest) Validate() error {
	if err := utils.ValidateTargetURL(r.TargetURL); err != nil {
		return gin.Error{
			Err:  err,
			Type: gin.ErrorTypeBind,
		}
	}
	return nil
}
