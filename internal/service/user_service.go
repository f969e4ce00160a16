package service

import (
	"fmt"
	"strings"

	"github.com/zempo1/bookKeeper/internal/models"
	"github.com/zempo1/bookKeeper/internal/util"

	"gorm.io/gorm"
)

// UserService 负责注册/登录（访问层）
type UserService struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	return &UserService{
		DB:         db,
		BcryptCost: bcryptCost,
	}
}

// Register 创建新用户。用户名不区分大小写唯一，密码只存 bcrypt 哈希。
// 用户名重复或参数不合法时返回 ErrDuplicateUsername / ErrValidation。
func (s *UserService) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	if err := util.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// 不区分大小写唯一：使用 LOWER(username) 检查
	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", username).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hash, err := util.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// 唯一索引兜底：并发注册时前面的 Count 可能漏判
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Login 校验用户名和密码，成功返回用户（不含明文凭证）。
// 用户不存在和密码错误返回同一个 ErrAuthentication，避免泄露用户是否存在。
func (s *UserService) Login(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	var user models.User
	if err := s.DB.Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAuthentication
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, ErrAuthentication
	}
	return &user, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "unique constraint") || strings.Contains(s, "duplicate key")
}
