package handler

import (
	"net/http"

	"github.com/zempo1/bookKeeper/internal/models"
	"github.com/zempo1/bookKeeper/internal/service"
	"github.com/zempo1/bookKeeper/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 负责分类相关接口
type CategoryHandler struct {
	Categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type createCategoryReq struct {
	UserID uint   `json:"userId" binding:"required"`
	Name   string `json:"name" binding:"required,max=64"`
	Type   string `json:"type" binding:"required"`
	Icon   string `json:"icon" binding:"max=32"`
}

// List 查询某个用户的分类，?type=INCOME/EXPENSE 可选
func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := parseUintParam(c.Query("userId"))
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "userId 不合法")
		return
	}

	categories, err := h.Categories.ListByUser(userID, c.Query("type"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	util.Success(c, categories)
}

// Create 创建分类，ID 由存储层分配
func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	category := models.Category{
		UserID: req.UserID,
		Name:   req.Name,
		Type:   req.Type,
		Icon:   req.Icon,
	}
	if err := h.Categories.Create(&category); err != nil {
		writeDomainError(c, err)
		return
	}

	util.Success(c, category)
}

// Delete 删除分类。?userId= 是调用方身份，只能删除自己的分类。
func (h *CategoryHandler) Delete(c *gin.Context) {
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

	if err := h.Categories.Delete(id, userID); err != nil {
		writeDomainError(c, err)
		return
	}

	util.Success(c, nil)
}
