package service

import (
	"errors"
	"strings"
	"time"

	"fittrack/internal/model"
	"fittrack/pkg/redis"
)

// WorkoutStore 训练记录存储接口，由 repository.WorkoutRepository 实现
type WorkoutStore interface {
	Create(workout *model.Workout) error
	GetByID(id uint) (*model.Workout, error)
	ListByOwner(userID uint, limit, offset int) ([]*model.Workout, error)
	Delete(id uint) error
}

// ActivityInput 训练项录入参数
type ActivityInput struct {
	Name        string
	DurationMin int
	Calories    int
}

// WorkoutService 训练记录服务
type WorkoutService struct {
	workouts    WorkoutStore
	friendships FriendIDLister
}

// NewWorkoutService 创建WorkoutService实例
func NewWorkoutService(workouts WorkoutStore, friendships FriendIDLister) *WorkoutService {
	return &WorkoutService{workouts: workouts, friendships: friendships}
}

// LogWorkout 记录一次训练
// 训练记录变化会出现在本人和所有好友的动态流里，缓存一并失效
func (s *WorkoutService) LogWorkout(userID uint, title, note string, startTime time.Time, activities []ActivityInput) (*model.Workout, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if len(activities) == 0 {
		return nil, errors.New("at least one activity is required")
	}
	if startTime.IsZero() {
		startTime = time.Now()
	}

	workout := &model.Workout{
		UserID:    userID,
		Title:     title,
		Note:      strings.TrimSpace(note),
		StartTime: startTime,
	}
	for _, a := range activities {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil, errors.New("activity name is required")
		}
		workout.Activities = append(workout.Activities, model.WorkoutActivity{
			Name:        name,
			DurationMin: a.DurationMin,
			Calories:    a.Calories,
		})
	}

	if err := s.workouts.Create(workout); err != nil {
		return nil, err
	}

	s.invalidateFeeds(userID)
	return workout, nil
}

// ListOwn 列出本人的训练记录
func (s *WorkoutService) ListOwn(userID uint, page, pageSize int) ([]*model.Workout, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.workouts.ListByOwner(userID, pageSize, (page-1)*pageSize)
}

// DeleteWorkout 删除本人的训练记录
// 非所有者操作返回 ErrForbidden
func (s *WorkoutService) DeleteWorkout(userID, workoutID uint) error {
	w, err := s.workouts.GetByID(workoutID)
	if err != nil {
		return err
	}
	if w.UserID != userID {
		return model.ErrForbidden
	}
	if err := s.workouts.Delete(workoutID); err != nil {
		return err
	}

	s.invalidateFeeds(userID)
	return nil
}

// invalidateFeeds 使本人及所有好友的动态流缓存失效
func (s *WorkoutService) invalidateFeeds(userID uint) {
	ids := []uint{userID}
	if friendIDs, err := s.friendships.ListFriendIDs(userID); err == nil {
		ids = append(ids, friendIDs...)
	}
	_ = redis.InvalidateFeedCache(ids...)
}
