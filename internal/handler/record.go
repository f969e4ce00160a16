package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zempo1/bookKeeper/internal/models"
	"github.com/zempo1/bookKeeper/internal/service"
	"github.com/zempo1/bookKeeper/internal/util"

	"github.com/gin-gonic/gin"
)

// RecordHandler 负责收支记录相关接口
type RecordHandler struct {
	Records *service.RecordService
}

func NewRecordHandler(records *service.RecordService) *RecordHandler {
	return &RecordHandler{Records: records}
}

// ---------- 请求/响应结构 ----------

type recordReq struct {
	UserID      uint    `json:"userId" binding:"required"`
	CategoryID  *uint   `json:"categoryId"`
	Type        string  `json:"type" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	RecordDate  string  `json:"recordDate" binding:"required"` // YYYY-MM-DD
	Description string  `json:"description" binding:"max=255"`
}

type recordResp struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userId"`
	CategoryID  *uint     `json:"categoryId,omitempty"`
	Type        string    `json:"type"`
	AmountCent  int64     `json:"amountCent"` // 分
	Amount      string    `json:"amount"`     // 元（字符串，方便前端直接显示）
	RecordDate  string    `json:"recordDate"` // YYYY-MM-DD
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ---------- 工具函数 ----------

// convertAmountToCent 把金额（元）转换为分，四舍五入到两位小数
func convertAmountToCent(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

// formatCentToAmount 把分转成元的字符串，两位小数
func formatCentToAmount(amountCent int64) string {
	return strconv.FormatFloat(float64(amountCent)/100.0, 'f', 2, 64)
}

func toRecordResp(r *models.Record) recordResp {
	return recordResp{
		ID:          r.ID,
		UserID:      r.UserID,
		CategoryID:  r.CategoryID,
		Type:        r.Type,
		AmountCent:  r.AmountCent,
		Amount:      formatCentToAmount(r.AmountCent),
		RecordDate:  r.RecordDate.Format("2006-01-02"),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

func (h *RecordHandler) bindRecord(c *gin.Context) (*models.Record, bool) {
	var req recordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return nil, false
	}

	recordDate, err := util.ParseDate(req.RecordDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "记账日期格式错误，应为 YYYY-MM-DD")
		return nil, false
	}

	return &models.Record{
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		AmountCent:  convertAmountToCent(req.Amount),
		RecordDate:  recordDate,
		Description: req.Description,
	}, true
}

// ---------- 接口 ----------

// List 查询某个用户在 [startDate, endDate] 内的记录，两端都包含
func (h *RecordHandler) List(c *gin.Context) {
	userID, startDate, endDate, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	records, err := h.Records.ListByUserAndRange(userID, startDate, endDate)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	items := make([]recordResp, 0, len(records))
	for i := range records {
		items = append(items, toRecordResp(&records[i]))
	}
	util.Success(c, items)
}

// Create 记一笔，ID 由存储层分配
func (h *RecordHandler) Create(c *gin.Context) {
	record, ok := h.bindRecord(c)
	if !ok {
		return
	}

	if err := h.Records.Create(record); err != nil {
		writeDomainError(c, err)
		return
	}

	util.Success(c, toRecordResp(record))
}

// Update 全量替换一条记录。路径里的 id 覆盖 payload 里的 id；
// payload 的 userId 即调用方身份，和已存记录归属不一致时拒绝。
func (h *RecordHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID 不合法")
		return
	}

	record, ok := h.bindRecord(c)
	if !ok {
		return
	}

	updated, err := h.Records.Update(id, record)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	util.Success(c, toRecordResp(updated))
}

// Delete 删除一条记录。?userId= 是调用方身份，只能删除自己的记录。
func (h *RecordHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID 不合法")
		return
	}
	userID, ok := parseUintParam(c.Query("userId"))
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "userId 不合法")
		return
	}

	if err := h.Records.Delete(id, userID); err != nil {
		writeDomainError(c, err)
		return
	}

	util.Success(c, nil)
}

// parseRangeQuery 解析 userId / startDate / endDate 三个查询参数
func parseRangeQuery(c *gin.Context) (uint, time.Time, time.Time, bool) {
	userID, ok := parseUintParam(c.Query("userId"))
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "userId 不合法")
		return 0, time.Time{}, time.Time{}, false
	}

	startDate, err := util.ParseDate(c.Query("startDate"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "开始日期格式错误，应为 YYYY-MM-DD")
		return 0, time.Time{}, time.Time{}, false
	}
	endDate, err := util.ParseDate(c.Query("endDate"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "结束日期格式错误，应为 YYYY-MM-DD")
		return 0, time.Time{}, time.Time{}, false
	}

	return userID, startDate, endDate, true
}
