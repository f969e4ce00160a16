package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/zempo1/bookKeeper/internal/service"
	"github.com/zempo1/bookKeeper/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 负责把收支记录导出为 CSV / XLSX
type ExportHandler struct {
	Records *service.RecordService
}

func NewExportHandler(records *service.RecordService) *ExportHandler {
	return &ExportHandler{Records: records}
}

var exportHeaders = []string{"类型", "金额(元)", "日期", "备注"}

// ExportCSV 导出记录为 CSV，参数和列表接口一致
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID, startDate, endDate, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	records, err := h.Records.ListByUserAndRange(userID, startDate, endDate)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"records_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM（让 Excel 正确识别中文）
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)

	for i := range records {
		r := &records[i]

		typeText := "支出"
		if r.Type == "INCOME" {
			typeText = "收入"
		}

		writer.Write([]string{
			typeText,
			formatCentToAmount(r.AmountCent),
			r.RecordDate.Format("2006-01-02"),
			r.Description,
		})
	}
}

// ExportXLSX 导出记录为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, startDate, endDate, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	records, err := h.Records.ListByUserAndRange(userID, startDate, endDate)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "收支明细"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "创建工作表失败")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range records {
		r := &records[idx]
		row := idx + 2

		typeText := "支出"
		if r.Type == "INCOME" {
			typeText = "收入"
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), typeText)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), formatCentToAmount(r.AmountCent))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.RecordDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Description)
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"records_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "导出失败")
	}
}
