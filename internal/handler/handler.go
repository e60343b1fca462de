package handler

import (
	"errors"
	"strconv"

	"fittrack/internal/model"
	"fittrack/pkg/jwt"
	"fittrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// currentUserID 从JWT中间件写入的Context取当前用户ID
func currentUserID(c *gin.Context) (uint, bool) {
	userIDStr := jwt.GetUserID(c)
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil || userID == 0 {
		return 0, false
	}
	return uint(userID), true
}

// respondDomainError 把领域错误映射为HTTP响应
// 存储层细节不外泄，未识别的错误一律返回500
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		response.Unauthorized(c, "用户未认证")
	case errors.Is(err, model.ErrForbidden):
		response.Forbidden(c, "无权操作该记录")
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(c, "记录不存在")
	case errors.Is(err, model.ErrInvalidTarget):
		response.BadRequest(c, "目标用户非法")
	case errors.Is(err, model.ErrAlreadyFriends):
		response.Conflict(c, "你们已经是好友")
	case errors.Is(err, model.ErrRequestAlreadyPending):
		response.Conflict(c, "已有待处理的好友请求")
	case errors.Is(err, model.ErrInvalidState):
		response.Conflict(c, "请求已处理")
	default:
		response.InternalError(c, "服务器内部错误")
	}
}
