package service

import (
	"testing"
	"time"

	"fittrack/config"
	"fittrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedFixture struct {
	users       *fakeUserStore
	friendships *fakeFriendshipStore
	workouts    *fakeWorkoutStore
	svc         *FeedService

	alice *model.User
	bob   *model.User
	carol *model.User
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	f := &feedFixture{
		users:       newFakeUserStore(),
		friendships: newFakeFriendshipStore(),
		workouts:    newFakeWorkoutStore(),
	}
	f.svc = NewFeedService(f.friendships, f.workouts, f.users, config.FeedConfig{
		DefaultPageSize: 20,
		MaxPageSize:     100,
	})

	f.alice = &model.User{Username: "alice", FirstName: "Alice", LastName: "Anderson"}
	f.bob = &model.User{Username: "bob", FirstName: "Bob", LastName: "Baker",
		Nickname: "Bobby", DisplayPreference: model.DisplayPreferenceNickname}
	f.carol = &model.User{Username: "carol", FirstName: "Carol", LastName: "Clark"}
	require.NoError(t, f.users.Create(f.alice))
	require.NoError(t, f.users.Create(f.bob))
	require.NoError(t, f.users.Create(f.carol))
	return f
}

// addWorkout 为某用户插入一条带单个训练项的记录
func (f *feedFixture) addWorkout(t *testing.T, userID uint, title string, start time.Time, activities ...model.WorkoutActivity) *model.Workout {
	t.Helper()
	if len(activities) == 0 {
		activities = []model.WorkoutActivity{{Name: title, DurationMin: 30}}
	}
	w := &model.Workout{
		UserID:     userID,
		Title:      title,
		StartTime:  start,
		Activities: activities,
	}
	require.NoError(t, f.workouts.Create(w))
	return w
}

func TestGetFeed(t *testing.T) {
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	t.Run("own workouts appear without any friends", func(t *testing.T) {
		f := newFeedFixture(t)
		f.addWorkout(t, f.alice.ID, "Morning Run", base)

		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{})
		require.NoError(t, err)
		require.Len(t, feed.Workouts, 1)
		assert.Equal(t, "Morning Run", feed.Workouts[0].WorkoutTitle)
		assert.True(t, feed.Workouts[0].IsOwnWorkout)
		assert.False(t, feed.HasFriends)
	})

	t.Run("has_friends reflects friend count, not content", func(t *testing.T) {
		f := newFeedFixture(t)
		require.NoError(t, f.friendships.AddEdge(f.alice.ID, f.bob.ID))

		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{})
		require.NoError(t, err)
		assert.True(t, feed.HasFriends)
		assert.Empty(t, feed.Workouts)
	})

	t.Run("includes friend workouts logged before the friendship", func(t *testing.T) {
		f := newFeedFixture(t)
		// 先有训练，后成为好友
		f.addWorkout(t, f.bob.ID, "Old Session", base.Add(-30*24*time.Hour))
		require.NoError(t, f.friendships.AddEdge(f.alice.ID, f.bob.ID))

		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{})
		require.NoError(t, err)
		require.Len(t, feed.Workouts, 1)
		assert.Equal(t, f.bob.ID, feed.Workouts[0].UserID)
		assert.False(t, feed.Workouts[0].IsOwnWorkout)
	})

	t.Run("excludes strangers even with a mutual friend", func(t *testing.T) {
		f := newFeedFixture(t)
		// alice-bob 和 bob-carol 是好友，alice-carol 不是
		require.NoError(t, f.friendships.AddEdge(f.alice.ID, f.bob.ID))
		require.NoError(t, f.friendships.AddEdge(f.bob.ID, f.carol.ID))
		f.addWorkout(t, f.carol.ID, "Carol Yoga", base)

		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{})
		require.NoError(t, err)
		assert.Empty(t, feed.Workouts)

		// bob 两边都能看到
		bobFeed, err := f.svc.GetFeed(f.bob.ID, FeedQuery{})
		require.NoError(t, err)
		require.Len(t, bobFeed.Workouts, 1)
		assert.Equal(t, f.carol.ID, bobFeed.Workouts[0].UserID)
	})

	t.Run("entries sorted by start time descending", func(t *testing.T) {
		f := newFeedFixture(t)
		require.NoError(t, f.friendships.AddEdge(f.alice.ID, f.bob.ID))
		f.addWorkout(t, f.alice.ID, "Oldest", base)
		f.addWorkout(t, f.bob.ID, "Newest", base.Add(2*time.Hour))
		f.addWorkout(t, f.alice.ID, "Middle", base.Add(time.Hour))

		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{})
		require.NoError(t, err)
		require.Len(t, feed.Workouts, 3)
		assert.Equal(t, "Newest", feed.Workouts[0].WorkoutTitle)
		assert.Equal(t, "Middle", feed.Workouts[1].WorkoutTitle)
		assert.Equal(t, "Oldest", feed.Workouts[2].WorkoutTitle)
	})

	t.Run("equal start times break ties by activity id descending", func(t *testing.T) {
		f := newFeedFixture(t)
		w1 := f.addWorkout(t, f.alice.ID, "First", base)
		w2 := f.addWorkout(t, f.alice.ID, "Second", base)

		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{})
		require.NoError(t, err)
		require.Len(t, feed.Workouts, 2)
		assert.Equal(t, w2.Activities[0].ID, feed.Workouts[0].ID)
		assert.Equal(t, w1.Activities[0].ID, feed.Workouts[1].ID)
	})

	t.Run("one entry per activity", func(t *testing.T) {
		f := newFeedFixture(t)
		f.addWorkout(t, f.alice.ID, "Circuit", base,
			model.WorkoutActivity{Name: "Squats", DurationMin: 15},
			model.WorkoutActivity{Name: "Deadlifts", DurationMin: 20},
		)

		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{})
		require.NoError(t, err)
		require.Len(t, feed.Workouts, 2)
		for _, e := range feed.Workouts {
			assert.Equal(t, "Circuit", e.WorkoutTitle)
		}
	})

	t.Run("period filter is inclusive on both bounds", func(t *testing.T) {
		f := newFeedFixture(t)
		f.addWorkout(t, f.alice.ID, "Before", base.Add(-time.Hour))
		f.addWorkout(t, f.alice.ID, "OnStart", base)
		f.addWorkout(t, f.alice.ID, "OnEnd", base.Add(24*time.Hour))
		f.addWorkout(t, f.alice.ID, "After", base.Add(25*time.Hour))

		start := base
		end := base.Add(24 * time.Hour)
		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{PeriodStart: &start, PeriodEnd: &end})
		require.NoError(t, err)
		require.Len(t, feed.Workouts, 2)
		assert.Equal(t, "OnEnd", feed.Workouts[0].WorkoutTitle)
		assert.Equal(t, "OnStart", feed.Workouts[1].WorkoutTitle)
	})

	t.Run("pagination slices after the full sort", func(t *testing.T) {
		f := newFeedFixture(t)
		for i := 0; i < 5; i++ {
			f.addWorkout(t, f.alice.ID, "Session", base.Add(time.Duration(i)*time.Hour))
		}

		page1, err := f.svc.GetFeed(f.alice.ID, FeedQuery{Page: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page1.Workouts, 2)
		assert.Equal(t, int64(5), page1.Pagination.Total)
		assert.Equal(t, 3, page1.Pagination.TotalPages)

		page3, err := f.svc.GetFeed(f.alice.ID, FeedQuery{Page: 3, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page3.Workouts, 1)

		// 三页拼起来严格递减，无重复无遗漏
		page2, err := f.svc.GetFeed(f.alice.ID, FeedQuery{Page: 2, Limit: 2})
		require.NoError(t, err)
		seen := map[uint]bool{}
		all := append(append(page1.Workouts, page2.Workouts...), page3.Workouts...)
		require.Len(t, all, 5)
		for _, e := range all {
			assert.False(t, seen[e.ID])
			seen[e.ID] = true
		}
	})

	t.Run("page beyond the end is empty but keeps totals", func(t *testing.T) {
		f := newFeedFixture(t)
		f.addWorkout(t, f.alice.ID, "Only", base)

		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{Page: 9, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, feed.Workouts)
		assert.Equal(t, int64(1), feed.Pagination.Total)
	})

	t.Run("limit is clamped to the configured maximum", func(t *testing.T) {
		f := newFeedFixture(t)
		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{Limit: 10000})
		require.NoError(t, err)
		assert.Equal(t, 100, feed.Pagination.Limit)
	})

	t.Run("entries carry the owner's display identity", func(t *testing.T) {
		f := newFeedFixture(t)
		require.NoError(t, f.friendships.AddEdge(f.alice.ID, f.bob.ID))
		f.addWorkout(t, f.bob.ID, "Bob Lifts", base)

		feed, err := f.svc.GetFeed(f.alice.ID, FeedQuery{})
		require.NoError(t, err)
		require.Len(t, feed.Workouts, 1)
		// bob 的展示偏好是昵称
		assert.Equal(t, "Bobby", feed.Workouts[0].DisplayName)
	})
}
