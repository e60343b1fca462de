package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fittrack/config"
	"fittrack/internal/model"
	"fittrack/pkg/jwt"
	"fittrack/pkg/password"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UserStore 用户存储接口，由 repository.UserRepository 实现
type UserStore interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByIDs(ids []uint) (map[uint]*model.User, error)
	GetByUsernameOrEmail(identifier string) (*model.User, error)
	UpdateProfile(id uint, fields map[string]interface{}) error
	Search(excludeUserID uint, query string, limit int) ([]*model.User, error)
}

// UserService 用户服务：注册、登录、资料、搜索
type UserService struct {
	repo       UserStore
	jwtService *jwt.JWTService
	searchCfg  config.SearchConfig
	collator   *collate.Collator
}

// NewUserService 创建UserService实例
func NewUserService(repo UserStore, jwtService *jwt.JWTService, searchCfg config.SearchConfig) *UserService {
	if searchCfg.MinQueryLength <= 0 {
		searchCfg.MinQueryLength = 2
	}
	if searchCfg.MaxResults <= 0 {
		searchCfg.MaxResults = 20
	}
	return &UserService{
		repo:       repo,
		jwtService: jwtService,
		searchCfg:  searchCfg,
		// Loose: 忽略大小写、变音符号，非ASCII姓名排序才不出怪序
		collator: collate.New(language.Und, collate.Loose),
	}
}

// RegisterInput 注册参数
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Nickname  string
}

// Register 注册
func (s *UserService) Register(in RegisterInput) (*model.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	// 邮箱列上有唯一索引，空邮箱会让第二个无邮箱注册撞到 '' 这个键
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, "", errors.New("username, email and password are required")
	}
	// 密码哈希
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Username:          in.Username,
		Email:             in.Email,
		PasswordHash:      hash,
		FirstName:         strings.TrimSpace(in.FirstName),
		LastName:          strings.TrimSpace(in.LastName),
		Nickname:          strings.TrimSpace(in.Nickname),
		DisplayPreference: model.DisplayPreferenceFirstName,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}
	// 默认签发 token
	token, err := s.jwtService.GenerateToken(
		fmt.Sprintf("%d", user.ID),
		map[string]interface{}{"username": user.Username},
	)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 登录
func (s *UserService) Login(identifier, plainPassword string) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, "", errors.New("identifier and password are required")
	}
	u, err := s.repo.GetByUsernameOrEmail(identifier)
	if err != nil {
		return nil, "", errors.New("invalid credentials")
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, "", errors.New("invalid credentials")
	}
	token, err := s.jwtService.GenerateToken(
		fmt.Sprintf("%d", u.ID),
		map[string]interface{}{"username": u.Username},
	)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetProfile 获取用户资料
func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.repo.GetByID(userID)
}

// ProfileUpdateInput 资料更新参数，nil 字段不更新
type ProfileUpdateInput struct {
	FirstName         *string
	LastName          *string
	Nickname          *string
	DisplayPreference *string
	Avatar            *string
}

// UpdateProfile 更新用户资料
func (s *UserService) UpdateProfile(userID uint, in ProfileUpdateInput) (*model.User, error) {
	fields := map[string]interface{}{}
	if in.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.Nickname != nil {
		fields["nickname"] = strings.TrimSpace(*in.Nickname)
	}
	if in.DisplayPreference != nil {
		pref := *in.DisplayPreference
		if pref != model.DisplayPreferenceFirstName && pref != model.DisplayPreferenceNickname {
			return nil, errors.New("invalid display preference")
		}
		fields["display_preference"] = pref
	}
	if in.Avatar != nil {
		fields["avatar"] = strings.TrimSpace(*in.Avatar)
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateProfile(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(userID)
}

// Search 按姓名/昵称/邮箱搜索用户
// 大小写不敏感的子串匹配，结果排除调用者本人
// 查询过短直接返回空结果而不是报错
// 排序：名→姓，使用忽略大小写和变音符号的本地化比较
func (s *UserService) Search(actorID uint, query string) ([]*model.User, error) {
	if actorID == 0 {
		return nil, model.ErrUnauthorized
	}

	query = strings.TrimSpace(query)
	if len([]rune(query)) < s.searchCfg.MinQueryLength {
		return []*model.User{}, nil
	}

	users, err := s.repo.Search(actorID, query, s.searchCfg.MaxResults)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		if c := s.collator.CompareString(users[i].FirstName, users[j].FirstName); c != 0 {
			return c < 0
		}
		return s.collator.CompareString(users[i].LastName, users[j].LastName) < 0
	})

	if users == nil {
		users = []*model.User{}
	}
	return users, nil
}
