package service

import (
	"path/filepath"
	"testing"

	"github.com/zempo1/bookKeeper/internal/config"
	"github.com/zempo1/bookKeeper/internal/database"
	"github.com/zempo1/bookKeeper/internal/models"

	"gorm.io/gorm"
)

// ==================== 辅助函数 ====================

// setupTestDB 初始化测试数据库（每个测试一个独立的临时文件）
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:    filepath.Join(t.TempDir(), "test_bookkeeper.db"),
		LogMode: false,
	}

	db, err := database.Init(cfg)
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// createTestUser 创建测试用户并返回
func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	users := NewUserService(db, 4) // bcrypt.MinCost，测试用
	user, err := users.Register(username, "Password123")
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", username, err)
	}
	return *user
}
