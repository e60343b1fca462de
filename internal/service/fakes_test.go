package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"fittrack/internal/model"
)

// 内存版存储实现，语义与 repository 层保持一致，供服务层测试使用

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User)}
}

func (s *fakeUserStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByIDs(ids []uint) (map[uint]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[uint]*model.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

func (s *fakeUserStore) GetByUsernameOrEmail(identifier string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *fakeUserStore) UpdateProfile(id uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	for key, value := range fields {
		str, _ := value.(string)
		switch key {
		case "first_name":
			u.FirstName = str
		case "last_name":
			u.LastName = str
		case "nickname":
			u.Nickname = str
		case "display_preference":
			u.DisplayPreference = str
		case "avatar":
			u.Avatar = str
		}
	}
	return nil
}

func (s *fakeUserStore) Search(excludeUserID uint, query string, limit int) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var result []*model.User
	// 按ID遍历保证确定性
	ids := make([]uint, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		u := s.users[id]
		if u.ID == excludeUserID {
			continue
		}
		if strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) ||
			strings.Contains(strings.ToLower(u.Nickname), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			result = append(result, u)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

type fakeFriendshipStore struct {
	mu     sync.Mutex
	nextID uint
	edges  map[uint]*model.Friendship
}

func newFakeFriendshipStore() *fakeFriendshipStore {
	return &fakeFriendshipStore{edges: make(map[uint]*model.Friendship)}
}

func (s *fakeFriendshipStore) AddEdge(userA, userB uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	one, two := model.CanonicalPair(userA, userB)
	for _, e := range s.edges {
		if e.UserOneID == one && e.UserTwoID == two {
			return nil // 幂等
		}
	}
	s.nextID++
	s.edges[s.nextID] = &model.Friendship{
		ID:        s.nextID,
		UserOneID: one,
		UserTwoID: two,
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *fakeFriendshipStore) HasEdge(userA, userB uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	one, two := model.CanonicalPair(userA, userB)
	for _, e := range s.edges {
		if e.UserOneID == one && e.UserTwoID == two {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeFriendshipStore) GetByID(id uint) (*model.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.edges[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return e, nil
}

func (s *fakeFriendshipStore) ListEdges(userID uint) ([]*model.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*model.Friendship
	for _, e := range s.edges {
		if e.Involves(userID) {
			result = append(result, e)
		}
	}
	// 最新的在前
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (s *fakeFriendshipStore) ListFriendIDs(userID uint) ([]uint, error) {
	edges, _ := s.ListEdges(userID)
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.OtherUser(userID))
	}
	return ids, nil
}

func (s *fakeFriendshipStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.edges[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.edges, id)
	return nil
}

type fakeFriendRequestStore struct {
	mu          sync.Mutex
	nextID      uint
	requests    map[uint]*model.FriendRequest
	friendships *fakeFriendshipStore
}

func newFakeFriendRequestStore(friendships *fakeFriendshipStore) *fakeFriendRequestStore {
	return &fakeFriendRequestStore{
		requests:    make(map[uint]*model.FriendRequest),
		friendships: friendships,
	}
}

func (s *fakeFriendRequestStore) GetByID(id uint) (*model.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return r, nil
}

func (s *fakeFriendRequestStore) CreatePending(requesterID, targetID uint) (*model.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		samePair := (r.RequesterID == requesterID && r.TargetID == targetID) ||
			(r.RequesterID == targetID && r.TargetID == requesterID)
		if samePair && r.Status == model.RequestStatusPending {
			return nil, model.ErrRequestAlreadyPending
		}
	}
	if has, _ := s.friendships.HasEdge(requesterID, targetID); has {
		return nil, model.ErrAlreadyFriends
	}
	s.nextID++
	req := &model.FriendRequest{
		ID:          s.nextID,
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      model.RequestStatusPending,
		CreatedAt:   time.Now(),
	}
	s.requests[req.ID] = req
	return req, nil
}

func (s *fakeFriendRequestStore) listPending(filter func(*model.FriendRequest) bool) []*model.FriendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*model.FriendRequest
	for _, r := range s.requests {
		if r.Status == model.RequestStatusPending && filter(r) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result
}

func (s *fakeFriendRequestStore) ListPendingIncoming(userID uint) ([]*model.FriendRequest, error) {
	return s.listPending(func(r *model.FriendRequest) bool { return r.TargetID == userID }), nil
}

func (s *fakeFriendRequestStore) ListPendingOutgoing(userID uint) ([]*model.FriendRequest, error) {
	return s.listPending(func(r *model.FriendRequest) bool { return r.RequesterID == userID }), nil
}

func (s *fakeFriendRequestStore) Accept(id uint) (*model.FriendRequest, bool, error) {
	s.mu.Lock()
	r, ok := s.requests[id]
	if !ok {
		s.mu.Unlock()
		return nil, false, model.ErrNotFound
	}
	switch r.Status {
	case model.RequestStatusAccepted:
		s.mu.Unlock()
		return r, false, nil
	case model.RequestStatusDeclined:
		s.mu.Unlock()
		return nil, false, model.ErrInvalidState
	}
	r.Status = model.RequestStatusAccepted
	s.mu.Unlock()
	if err := s.friendships.AddEdge(r.RequesterID, r.TargetID); err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func (s *fakeFriendRequestStore) Decline(id uint) (*model.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if r.IsTerminal() {
		return nil, model.ErrInvalidState
	}
	r.Status = model.RequestStatusDeclined
	return r, nil
}

func (s *fakeFriendRequestStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.requests, id)
	return nil
}

type fakeWorkoutStore struct {
	mu       sync.Mutex
	nextID   uint
	workouts map[uint]*model.Workout
}

func newFakeWorkoutStore() *fakeWorkoutStore {
	return &fakeWorkoutStore{workouts: make(map[uint]*model.Workout)}
}

func (s *fakeWorkoutStore) Create(workout *model.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	workout.ID = s.nextID
	for i := range workout.Activities {
		s.nextID++
		workout.Activities[i].ID = s.nextID
		workout.Activities[i].WorkoutID = workout.ID
	}
	s.workouts[workout.ID] = workout
	return nil
}

func (s *fakeWorkoutStore) GetByID(id uint) (*model.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workouts[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return w, nil
}

func (s *fakeWorkoutStore) ListByOwner(userID uint, limit, offset int) ([]*model.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*model.Workout
	for _, w := range s.workouts {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.After(result[j].StartTime)
		}
		return result[i].ID > result[j].ID
	})
	if offset > len(result) {
		offset = len(result)
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func (s *fakeWorkoutStore) ListByOwners(ownerIDs []uint, start, end *time.Time) ([]*model.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owners := make(map[uint]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}
	result := []*model.Workout{}
	for _, w := range s.workouts {
		if !owners[w.UserID] {
			continue
		}
		if start != nil && w.StartTime.Before(*start) {
			continue
		}
		if end != nil && w.StartTime.After(*end) {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

func (s *fakeWorkoutStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workouts[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.workouts, id)
	return nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	recipients []uint
	accepters  []uint
	err        error
}

func (n *fakeNotifier) FriendRequestAccepted(recipientID uint, accepter *model.User) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recipients = append(n.recipients, recipientID)
	n.accepters = append(n.accepters, accepter.ID)
	return n.err
}
