package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	ctxPkg "github.com/yeisme/docdrop/pkg/context"
	"github.com/yeisme/docdrop/pkg/internal/model"
	"github.com/yeisme/docdrop/pkg/internal/storage/db"
	nlog "github.com/yeisme/docdrop/pkg/log"
	"github.com/yeisme/docdrop/pkg/metrics"
	"github.com/yeisme/docdrop/pkg/rule"
)

var (
	// ErrNameRequired 注册时名称为空.
	ErrNameRequired = errors.New("name is required")
	// ErrEmailInvalid 邮箱格式不合法.
	ErrEmailInvalid = errors.New("email is invalid")
	// ErrEmailTaken 邮箱已被其他用户占用.
	ErrEmailTaken = errors.New("email already exists")
	// ErrUserNotFound 用户不存在.
	ErrUserNotFound = errors.New("user not found")
)

// UserService 负责用户注册与查询，不处理 HTTP 细节.
type UserService struct {
	dbClient *db.Client
}

// NewUserService 从 context 获取依赖实例.
func NewUserService(c context.Context) *UserService {
	dbc := ctxPkg.GetDBClient(c)

	// 为了安全起见，应该直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	return &UserService{dbClient: dbc}
}

// Register 创建用户. 名称必填（去除首尾空白后非空），邮箱可选且全局唯一.
// 唯一约束冲突由数据库兜底，映射为 ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, name, email string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	email = strings.TrimSpace(email)

	user := &model.User{Name: name}

	if email != "" {
		if err := rule.ValidateVar(email, "email"); err != nil {
			return nil, ErrEmailInvalid
		}

		user.Email = &email
	}

	if err := s.dbClient.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}

		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.UsersRegistered.Inc()

	nlog.Logger().Info().Uint("user_id", user.ID).Str("name", name).Msg("user registered")

	return user, nil
}

// GetUser 按 id 查询用户.
func (s *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.dbClient.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// ListUsers 返回全部用户，最近注册的在前.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.dbClient.WithContext(ctx).Order("id DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}
