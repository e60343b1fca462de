package handler

import (
	"fittrack/internal/service"
	"fittrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户接口处理器
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler 创建UserHandler实例
func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Register 用户注册
func (h *UserHandler) Register(c *gin.Context) {
	type req struct {
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Nickname  string `json:"nickname"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.service.Register(service.RegisterInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Nickname:  r.Nickname,
	})
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "注册成功", &response.RegisterResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	type req struct {
		UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.service.Login(r.UsernameOrEmail, r.Password)
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "登录成功", &response.LoginResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// GetProfile 获取用户资料（需要JWT认证）
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	user, err := h.service.GetProfile(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, response.FilterUserInfo(user))
}

// UpdateProfile 更新用户资料（需要JWT认证）
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	type req struct {
		FirstName         *string `json:"first_name"`
		LastName          *string `json:"last_name"`
		Nickname          *string `json:"nickname"`
		DisplayPreference *string `json:"display_preference"`
		Avatar            *string `json:"avatar"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(userID, service.ProfileUpdateInput{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Nickname:          r.Nickname,
		DisplayPreference: r.DisplayPreference,
		Avatar:            r.Avatar,
	})
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.SuccessWithMessage(c, "资料已更新", response.FilterUserInfo(user))
}

// Search 搜索用户（需要JWT认证）
// 查询过短返回空列表而不是错误，结果不含调用者本人
func (h *UserHandler) Search(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	users, err := h.service.Search(userID, c.Query("query"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	results := make([]*response.UserSummary, 0, len(users))
	for _, u := range users {
		results = append(results, response.FilterUserSummary(u))
	}
	response.Success(c, results)
}
