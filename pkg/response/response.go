package response

import (
	"net/http"

	"fittrack/internal/model"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`            // 状态码：0表示成功，其他表示错误
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据
	Error   string      `json:"error,omitempty"` // 错误详情（仅在开发环境显示）
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Created 201响应（资源创建成功）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// Error 错误响应，HTTP状态码与业务码一致
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403错误
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409错误（状态冲突：已是好友、请求重复、请求已处理等）
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// UserInfo 用户信息（隐藏敏感字段）
type UserInfo struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Nickname          string `json:"nickname"`
	DisplayName       string `json:"display_name"`
	DisplayPreference string `json:"display_preference"`
	Avatar            string `json:"avatar"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// FilterUserInfo 过滤用户信息，隐藏敏感字段
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}

	return &UserInfo{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Nickname:          user.Nickname,
		DisplayName:       user.DisplayName(),
		DisplayPreference: user.DisplayPreference,
		Avatar:            user.Avatar,
		CreatedAt:         user.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         user.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// UserSummary 用户摘要（搜索结果等场景）
type UserSummary struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Nickname    string `json:"nickname"`
	Avatar      string `json:"avatar"`
}

// FilterUserSummary 生成用户摘要
func FilterUserSummary(user *model.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{
		ID:          user.ID,
		DisplayName: user.DisplayName(),
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Nickname:    user.Nickname,
		Avatar:      user.Avatar,
	}
}

// FriendSummary 好友摘要，携带边ID以支持按ID解除好友
type FriendSummary struct {
	ID           uint   `json:"id"`
	FriendshipID uint   `json:"friendship_id"`
	DisplayName  string `json:"display_name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
}

// FriendRequestInfo 好友请求信息，User 为对端用户摘要
// incoming 列表中 User 是请求发起者，outgoing 列表中是接收者
type FriendRequestInfo struct {
	ID        uint         `json:"id"`
	Status    string       `json:"status"`
	CreatedAt string       `json:"created_at"`
	User      *UserSummary `json:"user"`
}

// FriendRequestListResponse 好友请求列表响应
type FriendRequestListResponse struct {
	Incoming []*FriendRequestInfo `json:"incoming"`
	Outgoing []*FriendRequestInfo `json:"outgoing"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// WorkoutActivityInfo 训练项响应
type WorkoutActivityInfo struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	DurationMin int    `json:"duration_min"`
	Calories    int    `json:"calories"`
}

// WorkoutInfo 训练记录响应
type WorkoutInfo struct {
	ID         uint                   `json:"id"`
	UserID     uint                   `json:"user_id"`
	Title      string                 `json:"title"`
	Note       string                 `json:"note,omitempty"`
	StartTime  string                 `json:"start_time"`
	Activities []*WorkoutActivityInfo `json:"activities"`
	CreatedAt  string                 `json:"created_at"`
}

// FilterWorkoutInfo 过滤训练记录信息
func FilterWorkoutInfo(workout *model.Workout) *WorkoutInfo {
	if workout == nil {
		return nil
	}
	activities := make([]*WorkoutActivityInfo, 0, len(workout.Activities))
	for _, a := range workout.Activities {
		activities = append(activities, &WorkoutActivityInfo{
			ID:          a.ID,
			Name:        a.Name,
			DurationMin: a.DurationMin,
			Calories:    a.Calories,
		})
	}
	return &WorkoutInfo{
		ID:         workout.ID,
		UserID:     workout.UserID,
		Title:      workout.Title,
		Note:       workout.Note,
		StartTime:  workout.StartTime.Format("2006-01-02 15:04:05"),
		Activities: activities,
		CreatedAt:  workout.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// FeedEntry 动态流条目：每个训练项一条，带冗余的用户展示信息
// 排序键：训练开始时间倒序，时间相同时按条目ID倒序
type FeedEntry struct {
	ID           uint   `json:"id"` // 训练项ID
	WorkoutID    uint   `json:"workout_id"`
	WorkoutTitle string `json:"workout_title"`
	StartTime    string `json:"start_time"`
	ActivityName string `json:"activity_name"`
	DurationMin  int    `json:"duration_min"`
	Calories     int    `json:"calories"`
	UserID       uint   `json:"user_id"`
	DisplayName  string `json:"display_name"`
	Avatar       string `json:"avatar"`
	IsOwnWorkout bool   `json:"is_own_workout"`
}

// Pagination 分页信息
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// FeedResponse 动态流响应
type FeedResponse struct {
	Workouts   []*FeedEntry `json:"workouts"`
	HasFriends bool         `json:"has_friends"`
	Pagination *Pagination  `json:"pagination"`
}
