package service

import (
	"fmt"
	"time"

	"github.com/zempo1/bookKeeper/internal/models"
	"github.com/zempo1/bookKeeper/internal/util"

	"gorm.io/gorm"
)

// RecordService 负责收支记录的查询和增删改
type RecordService struct {
	DB *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{DB: db}
}

// ListByUserAndRange 查询某个用户在 [startDate, endDate] 内的记录，两端都包含。
// endDate 早于 startDate 时返回 ErrDateRange。
func (s *RecordService) ListByUserAndRange(userID uint, startDate, endDate time.Time) ([]models.Record, error) {
	start := truncateToDate(startDate)
	end := truncateToDate(endDate)
	if end.Before(start) {
		return nil, ErrDateRange
	}

	records := make([]models.Record, 0)
	// 结束日期按“当天结束”处理：< end+1 天，等价于日期上的闭区间
	if err := s.DB.
		Where("user_id = ? AND record_date >= ? AND record_date < ?",
			userID, start, end.AddDate(0, 0, 1)).
		Order("record_date ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Create 创建一笔记录。ID 由存储层分配，忽略调用方传入的 ID。
func (s *RecordService) Create(record *models.Record) error {
	record.ID = 0

	if err := s.validate(record); err != nil {
		return err
	}
	if err := s.checkUserExists(record.UserID); err != nil {
		return err
	}

	record.RecordDate = truncateToDate(record.RecordDate)
	if err := s.DB.Create(record).Error; err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// Update 全量替换 id 对应的记录。严格更新，不做 upsert：
// id 不存在 -> ErrNotFound；record.UserID（调用方身份）和已存记录
// 的归属不一致 -> ErrForbidden。payload 里的 id 一律被 id 参数覆盖。
func (s *RecordService) Update(id uint, record *models.Record) (*models.Record, error) {
	if err := s.validate(record); err != nil {
		return nil, err
	}

	var stored models.Record
	if err := s.DB.First(&stored, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query record: %w", err)
	}
	if stored.UserID != record.UserID {
		return nil, ErrForbidden
	}

	stored.CategoryID = record.CategoryID
	stored.Type = record.Type
	stored.AmountCent = record.AmountCent
	stored.RecordDate = truncateToDate(record.RecordDate)
	stored.Description = record.Description

	if err := s.DB.Save(&stored).Error; err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}
	return &stored, nil
}

// Delete 删除一笔记录。id 不存在时返回 ErrNotFound，不是静默成功；
// 不是本人的记录返回 ErrForbidden。
func (s *RecordService) Delete(id, callerUserID uint) error {
	var record models.Record
	if err := s.DB.First(&record, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("query record: %w", err)
	}
	if record.UserID != callerUserID {
		return ErrForbidden
	}

	if err := s.DB.Delete(&record).Error; err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (s *RecordService) validate(record *models.Record) error {
	if err := util.ValidateRecordType(record.Type); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := util.ValidateAmountCent(record.AmountCent); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if record.RecordDate.IsZero() {
		return fmt.Errorf("%w: 记账日期不能为空", ErrValidation)
	}
	if len(record.Description) > 255 {
		return fmt.Errorf("%w: 备注最多 255 个字符", ErrValidation)
	}
	return nil
}

func (s *RecordService) checkUserExists(userID uint) error {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("count user: %w", err)
	}
	if count == 0 {
		return ErrForeignKey
	}
	return nil
}

// truncateToDate 去掉时间部分，只保留日期（UTC 无关，按本地历法日）
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
