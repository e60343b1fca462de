package service

import (
	"sort"
	"time"

	"fittrack/config"
	"fittrack/internal/model"
	"fittrack/pkg/redis"
	"fittrack/pkg/response"
)

// WorkoutProvider 动态流的训练数据来源
// 按所属用户集合批量拉取，start/end 为可选的开始时间闭区间
type WorkoutProvider interface {
	ListByOwners(ownerIDs []uint, start, end *time.Time) ([]*model.Workout, error)
}

// FriendIDLister 好友ID解析接口（FriendshipStore 的读子集）
type FriendIDLister interface {
	ListFriendIDs(userID uint) ([]uint, error)
}

// FeedQuery 动态流查询参数
type FeedQuery struct {
	Page        int
	Limit       int
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// FeedService 动态流服务
// 合并本人和所有好友的训练记录，按开始时间倒序分页
type FeedService struct {
	friendships FriendIDLister
	workouts    WorkoutProvider
	users       UserStore
	cfg         config.FeedConfig
}

// NewFeedService 创建FeedService实例
func NewFeedService(friendships FriendIDLister, workouts WorkoutProvider, users UserStore, cfg config.FeedConfig) *FeedService {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &FeedService{
		friendships: friendships,
		workouts:    workouts,
		users:       users,
		cfg:         cfg,
	}
}

// feedItem 排序用的中间结构，保留原始时间
type feedItem struct {
	workout  *model.Workout
	activity model.WorkoutActivity
}

// GetFeed 获取某用户的聚合动态流
// 好友ID集合始终并入本人，零好友的用户也能看到自己的训练
// 排序在分页之前对全集完成，时间相同时按训练项ID倒序保证确定性
// has_friends 只看好友数，与有没有训练记录无关
func (s *FeedService) GetFeed(userID uint, q FeedQuery) (*response.FeedResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	// 不带时间过滤的首页尝试走缓存
	cacheable := page == 1 && q.PeriodStart == nil && q.PeriodEnd == nil
	if cacheable {
		var cached response.FeedResponse
		if hit, _ := redis.GetCachedFeedPage(userID, limit, &cached); hit {
			return &cached, nil
		}
	}

	friendIDs, err := s.friendships.ListFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	hasFriends := len(friendIDs) > 0

	// 本人始终在可见集合里
	ownerIDs := append([]uint{userID}, friendIDs...)

	workouts, err := s.workouts.ListByOwners(ownerIDs, q.PeriodStart, q.PeriodEnd)
	if err != nil {
		return nil, err
	}

	// 展开为训练项粒度的条目
	items := make([]feedItem, 0, len(workouts))
	for _, w := range workouts {
		for _, a := range w.Activities {
			items = append(items, feedItem{workout: w, activity: a})
		}
	}

	// 全量排序后再分页，页边界才稳定
	sort.Slice(items, func(i, j int) bool {
		ti, tj := items[i].workout.StartTime, items[j].workout.StartTime
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return items[i].activity.ID > items[j].activity.ID
	})

	total := int64(len(items))
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	offset := (page - 1) * limit
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	pageItems := items[offset:end]

	// 批量取所属用户的展示信息
	users, err := s.users.GetByIDs(ownerIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]*response.FeedEntry, 0, len(pageItems))
	for _, item := range pageItems {
		entry := &response.FeedEntry{
			ID:           item.activity.ID,
			WorkoutID:    item.workout.ID,
			WorkoutTitle: item.workout.Title,
			StartTime:    item.workout.StartTime.Format("2006-01-02 15:04:05"),
			ActivityName: item.activity.Name,
			DurationMin:  item.activity.DurationMin,
			Calories:     item.activity.Calories,
			UserID:       item.workout.UserID,
			IsOwnWorkout: item.workout.UserID == userID,
		}
		if u, ok := users[item.workout.UserID]; ok {
			entry.DisplayName = u.DisplayName()
			entry.Avatar = u.Avatar
		}
		entries = append(entries, entry)
	}

	result := &response.FeedResponse{
		Workouts:   entries,
		HasFriends: hasFriends,
		Pagination: &response.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}

	if cacheable {
		_ = redis.SetCachedFeedPage(userID, limit, result)
	}
	return result, nil
}
