package handler

import (
	"strconv"

	"fittrack/internal/service"
	"fittrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// FriendHandler 好友接口处理器
type FriendHandler struct {
	service *service.FriendService
}

// NewFriendHandler 创建FriendHandler实例
func NewFriendHandler(s *service.FriendService) *FriendHandler {
	return &FriendHandler{service: s}
}

// CreateRequest 发起好友请求
func (h *FriendHandler) CreateRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	type req struct {
		TargetUserID uint `json:"target_user_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	request, err := h.service.CreateRequest(userID, r.TargetUserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Created(c, gin.H{"request_id": request.ID})
}

// ListRequests 列出收到和发出的待处理请求
func (h *FriendHandler) ListRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	incoming, outgoing, err := h.service.ListRequests(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	result := &response.FriendRequestListResponse{
		Incoming: make([]*response.FriendRequestInfo, 0, len(incoming)),
		Outgoing: make([]*response.FriendRequestInfo, 0, len(outgoing)),
	}
	for _, r := range incoming {
		result.Incoming = append(result.Incoming, &response.FriendRequestInfo{
			ID:        r.Request.ID,
			Status:    r.Request.Status,
			CreatedAt: r.Request.CreatedAt.Format("2006-01-02 15:04:05"),
			User:      response.FilterUserSummary(r.User),
		})
	}
	for _, r := range outgoing {
		result.Outgoing = append(result.Outgoing, &response.FriendRequestInfo{
			ID:        r.Request.ID,
			Status:    r.Request.Status,
			CreatedAt: r.Request.CreatedAt.Format("2006-01-02 15:04:05"),
			User:      response.FilterUserSummary(r.User),
		})
	}
	response.Success(c, result)
}

// RespondToRequest 接受或拒绝好友请求
func (h *FriendHandler) RespondToRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid request_id")
		return
	}

	type req struct {
		Action string `json:"action" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if r.Action != service.RequestActionAccept && r.Action != service.RequestActionDecline {
		response.BadRequest(c, "action must be accept or decline")
		return
	}

	request, err := h.service.RespondToRequest(userID, uint(requestID), r.Action)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, gin.H{"status": request.Status})
}

// CancelRequest 撤回自己发出的好友请求
func (h *FriendHandler) CancelRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid request_id")
		return
	}

	if err := h.service.CancelRequest(userID, uint(requestID)); err != nil {
		respondDomainError(c, err)
		return
	}
	response.SuccessWithMessage(c, "请求已撤回", nil)
}

// ListFriends 列出好友
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	friends, err := h.service.ListFriends(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	result := make([]*response.FriendSummary, 0, len(friends))
	for _, f := range friends {
		summary := &response.FriendSummary{
			FriendshipID: f.Friendship.ID,
		}
		if f.User != nil {
			summary.ID = f.User.ID
			summary.DisplayName = f.User.DisplayName()
			summary.FirstName = f.User.FirstName
			summary.LastName = f.User.LastName
			summary.Avatar = f.User.Avatar
		}
		result = append(result, summary)
	}
	response.Success(c, result)
}

// Unfriend 解除好友关系
func (h *FriendHandler) Unfriend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	friendshipID, err := strconv.ParseUint(c.Param("friendship_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid friendship_id")
		return
	}

	if err := h.service.Unfriend(userID, uint(friendshipID)); err != nil {
		respondDomainError(c, err)
		return
	}
	response.SuccessWithMessage(c, "已解除好友关系", nil)
}
