package service

import (
	"fmt"
	"strings"

	"github.com/zempo1/bookKeeper/internal/models"
	"github.com/zempo1/bookKeeper/internal/util"

	"gorm.io/gorm"
)

// CategoryService 负责分类的查询和增删
type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

// ListByUser 查询某个用户的全部分类，typ 非空时按类型过滤。
// 用户不存在时返回空列表，不报错。
func (s *CategoryService) ListByUser(userID uint, typ string) ([]models.Category, error) {
	q := s.DB.Model(&models.Category{}).Where("user_id = ?", userID)
	if typ != "" {
		if err := util.ValidateRecordType(typ); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		q = q.Where("type = ?", typ)
	}

	categories := make([]models.Category, 0)
	if err := q.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Create 创建分类。ID 由存储层分配，忽略调用方传入的 ID。
// 引用的用户不存在时返回 ErrForeignKey。
func (s *CategoryService) Create(category *models.Category) error {
	category.ID = 0
	category.Name = strings.TrimSpace(category.Name)

	if category.Name == "" || len(category.Name) > 64 {
		return fmt.Errorf("%w: 分类名称为 1-64 个字符", ErrValidation)
	}
	if err := util.ValidateRecordType(category.Type); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.checkUserExists(category.UserID); err != nil {
		return err
	}

	if err := s.DB.Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Delete 删除分类。只能删除自己的分类：
// id 不存在 -> ErrNotFound；不是本人的 -> ErrForbidden。
func (s *CategoryService) Delete(id, callerUserID uint) error {
	var category models.Category
	if err := s.DB.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("query category: %w", err)
	}
	if category.UserID != callerUserID {
		return ErrForbidden
	}

	if err := s.DB.Delete(&category).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *CategoryService) checkUserExists(userID uint) error {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("count user: %w", err)
	}
	if count == 0 {
		return ErrForeignKey
	}
	return nil
}
