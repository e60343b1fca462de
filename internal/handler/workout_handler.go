package handler

import (
	"strconv"
	"time"

	"fittrack/internal/service"
	"fittrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler 训练记录接口处理器
type WorkoutHandler struct {
	service *service.WorkoutService
}

// NewWorkoutHandler 创建WorkoutHandler实例
func NewWorkoutHandler(s *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: s}
}

// LogWorkout 记录一次训练
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	type activityReq struct {
		Name        string `json:"name" binding:"required"`
		DurationMin int    `json:"duration_min"`
		Calories    int    `json:"calories"`
	}
	type req struct {
		Title      string        `json:"title" binding:"required"`
		Note       string        `json:"note"`
		StartTime  string        `json:"start_time"`
		Activities []activityReq `json:"activities" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var startTime time.Time
	if r.StartTime != "" {
		t, err := parseTimeParam(r.StartTime)
		if err != nil {
			response.BadRequest(c, "invalid start_time")
			return
		}
		startTime = t
	}

	activities := make([]service.ActivityInput, 0, len(r.Activities))
	for _, a := range r.Activities {
		activities = append(activities, service.ActivityInput{
			Name:        a.Name,
			DurationMin: a.DurationMin,
			Calories:    a.Calories,
		})
	}

	workout, err := h.service.LogWorkout(userID, r.Title, r.Note, startTime, activities)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, response.FilterWorkoutInfo(workout))
}

// ListOwn 列出本人的训练记录
func (h *WorkoutHandler) ListOwn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}

	workouts, err := h.service.ListOwn(userID, page, pageSize)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	result := make([]*response.WorkoutInfo, 0, len(workouts))
	for _, w := range workouts {
		result = append(result, response.FilterWorkoutInfo(w))
	}
	response.Success(c, result)
}

// DeleteWorkout 删除本人的训练记录
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	workoutID, err := strconv.ParseUint(c.Param("workout_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid workout_id")
		return
	}

	if err := h.service.DeleteWorkout(userID, uint(workoutID)); err != nil {
		respondDomainError(c, err)
		return
	}
	response.SuccessWithMessage(c, "训练记录已删除", nil)
}
