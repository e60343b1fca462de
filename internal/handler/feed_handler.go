package handler

import (
	"strconv"
	"time"

	"fittrack/internal/service"
	"fittrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// FeedHandler 动态流接口处理器
type FeedHandler struct {
	service *service.FeedService
}

// NewFeedHandler 创建FeedHandler实例
func NewFeedHandler(s *service.FeedService) *FeedHandler {
	return &FeedHandler{service: s}
}

// GetFeed 获取聚合动态流
// 查询参数：page、limit、start、end（日期或RFC3339时间，闭区间）
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}

	query := service.FeedQuery{Page: page, Limit: limit}

	if start := c.Query("start"); start != "" {
		t, perr := parseTimeParam(start)
		if perr != nil {
			response.BadRequest(c, "invalid start time")
			return
		}
		query.PeriodStart = &t
	}
	if end := c.Query("end"); end != "" {
		t, perr := parseTimeParam(end)
		if perr != nil {
			response.BadRequest(c, "invalid end time")
			return
		}
		// 纯日期的结束边界取当天最后一刻，保证闭区间语义
		if len(end) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		query.PeriodEnd = &t
	}

	feed, err := h.service.GetFeed(userID, query)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, feed)
}

// parseTimeParam 解析时间参数，支持纯日期和RFC3339两种格式
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
