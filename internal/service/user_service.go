package service

import (
	"errors"
	"fmt"
	"strings"

	"moments/internal/model"
	"moments/internal/repository"
	"moments/pkg/jwt"
	"moments/pkg/password"
)

// 管理员创建用户或重置密码时使用的默认密码
const defaultPassword = "123456"

// ProfileInput 个人资料更新，nil 字段保持不变
type ProfileInput struct {
	Nickname   *string
	Email      *string
	Avatar     *string
	Background *string
	Bio        *string
}

type UserService struct {
	repo       *repository.UserRepository
	jwtService *jwt.JWTService
}

func NewUserService(repo *repository.UserRepository, jwtService *jwt.JWTService) *UserService {
	return &UserService{repo: repo, jwtService: jwtService}
}

// Register 注册，成功后直接签发 token
func (s *UserService) Register(username, email, nickname, plainPassword string) (*model.User, string, error) {
	user, err := s.create(username, email, nickname, plainPassword, model.RoleUser)
	if err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 登录，identifier 可以是用户名或邮箱
func (s *UserService) Login(identifier, plainPassword string) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, "", invalid("用户名和密码不能为空")
	}
	u, err := s.repo.GetByUsernameOrEmail(identifier)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetProfile 获取用户资料
func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, notFound(err, "用户")
	}
	return u, nil
}

// UpdateProfile 更新调用者自己的资料
func (s *UserService) UpdateProfile(caller *jwt.Caller, in ProfileInput) (*model.User, error) {
	u, err := s.repo.GetByID(caller.ID())
	if err != nil {
		return nil, notFound(err, "用户")
	}
	if in.Nickname != nil {
		u.Nickname = strings.TrimSpace(*in.Nickname)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Avatar != nil {
		u.Avatar = *in.Avatar
	}
	if in.Background != nil {
		u.Background = *in.Background
	}
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	if err := s.repo.Update(u); err != nil {
		return nil, fmt.Errorf("更新用户资料失败: %w", err)
	}
	return u, nil
}

// CurrentRole 用户当前角色，供鉴权中间件刷新令牌中的角色
func (s *UserService) CurrentRole(userID uint) (string, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return "", notFound(err, "用户")
	}
	return u.Role, nil
}

// ListUsers 管理员查看全部用户
func (s *UserService) ListUsers(caller *jwt.Caller) ([]*model.User, error) {
	if !isAdmin(caller) {
		return nil, ErrForbidden
	}
	return s.repo.List()
}

// AdminCreate 管理员创建用户，密码为空时使用默认密码
func (s *UserService) AdminCreate(caller *jwt.Caller, username, email, nickname, plainPassword, role string) (*model.User, error) {
	if !isAdmin(caller) {
		return nil, ErrForbidden
	}
	if plainPassword == "" {
		plainPassword = defaultPassword
	}
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, invalid("未知的角色: %s", role)
	}
	return s.create(username, email, nickname, plainPassword, role)
}

// UpdateRole 管理员修改用户角色
func (s *UserService) UpdateRole(caller *jwt.Caller, userID uint, role string) error {
	if !isAdmin(caller) {
		return ErrForbidden
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return invalid("未知的角色: %s", role)
	}
	if _, err := s.repo.GetByID(userID); err != nil {
		return notFound(err, "用户")
	}
	return s.repo.UpdateRole(userID, role)
}

// ResetPassword 管理员将用户密码重置为默认密码
func (s *UserService) ResetPassword(caller *jwt.Caller, userID uint) error {
	if !isAdmin(caller) {
		return ErrForbidden
	}
	if _, err := s.repo.GetByID(userID); err != nil {
		return notFound(err, "用户")
	}
	hash, err := password.Hash(defaultPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(userID, hash)
}

// DeleteUser 管理员删除用户，不能删除自己
func (s *UserService) DeleteUser(caller *jwt.Caller, userID uint) error {
	if !isAdmin(caller) {
		return ErrForbidden
	}
	if caller.UserID == userID {
		return invalid("不能删除自己")
	}
	if _, err := s.repo.GetByID(userID); err != nil {
		return notFound(err, "用户")
	}
	return s.repo.Delete(userID)
}

func (s *UserService) create(username, email, nickname, plainPassword, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || plainPassword == "" {
		return nil, invalid("用户名和密码不能为空")
	}
	taken, err := s.repo.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("用户名 %s: %w", username, ErrConflict)
	}
	if err := password.Validate(plainPassword); err != nil {
		return nil, invalid("%s", err.Error())
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		Nickname:     strings.TrimSpace(nickname),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	return user, nil
}

func (s *UserService) issueToken(u *model.User) (string, error) {
	return s.jwtService.GenerateToken(u.ID, u.Username, u.Role)
}
