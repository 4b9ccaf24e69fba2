package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/example/goshop/internal/auth"
	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/user"
	"github.com/example/goshop/internal/domain"
	"github.com/example/goshop/internal/notify"
)

type UserService struct {
	repo       user.Repository
	jwt        *config.JWTConfig
	dispatcher *notify.Dispatcher
}

func NewUserService(repo user.Repository, jwt *config.JWTConfig, dispatcher *notify.Dispatcher) *UserService {
	if dispatcher == nil {
		dispatcher = notify.Default()
	}
	return &UserService{repo: repo, jwt: jwt, dispatcher: dispatcher}
}

func hashPassword(raw, salt string) string {
	h := sha256.Sum256([]byte(raw + salt))
	return hex.EncodeToString(h[:])
}

// Register 注册新用户并广播 user_created 事件
func (s *UserService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &domain.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return nil, &domain.ValidationError{Field: "password", Reason: "must not be empty"}
	}

	u := &user.User{
		Username: username,
		Email:    email,
		Salt:     "goshop", // 简化实现，真实业务请使用随机盐
	}
	u.Password = hashPassword(password, u.Salt)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.dispatcher.Notify(notify.EventUserCreated, notify.Payload{
		"user_id": u.ID,
		"email":   u.Email,
	})
	return u, nil
}

// Login 登录并返回 JWT
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if hashPassword(password, u.Salt) != u.Password {
		return "", errors.New("invalid password")
	}
	return auth.GenerateToken(s.jwt, u.ID, u.Username)
}

// GetByID 查询用户
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}
