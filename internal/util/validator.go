package util

import (
	"fmt"
	"regexp"
	"time"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ValidateUsername 验证用户名（3-20 位字母、数字或下划线）
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-20 letters, digits or underscores")
	}
	return nil
}

// ValidatePassword 验证密码长度（6-64 位）
func ValidatePassword(password string) error {
	if len(password) < 6 || len(password) > 64 {
		return fmt.Errorf("password must be 6-64 characters")
	}
	return nil
}

// ValidateAmountCent 验证金额（分，必须为正数且不超过上限）
func ValidateAmountCent(amountCent int64) error {
	if amountCent <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amountCent)
	}
	if amountCent >= 1000000000 { // 限制最大金额为1千万元
		return fmt.Errorf("amount too large, got %d", amountCent)
	}
	return nil
}

// ValidateRecordType 验证收支类型
func ValidateRecordType(t string) error {
	if t != "INCOME" && t != "EXPENSE" {
		return fmt.Errorf("type must be INCOME or EXPENSE, got %q", t)
	}
	return nil
}

// ParseDate 解析 YYYY-MM-DD 格式的日期
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}
