package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/zempo1/bookKeeper/internal/service"
	"github.com/zempo1/bookKeeper/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责登录/注册相关接口
type AuthHandler struct {
	Users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册新用户。所有失败（参数错误、用户名重复）都返回 400。
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	user, err := h.Users.Register(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateUsername):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, service.ErrDuplicateUsername.Error())
		case errors.Is(err, service.ErrValidation):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		default:
			log.Printf("register: %v", err)
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "创建用户失败")
		}
		return
	}

	util.Success(c, user)
}

// Login 校验用户名和密码，成功直接返回用户信息。
// 不签发 token / session，需要会话的调用方自行在外层实现。
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "参数错误")
		return
	}

	user, err := h.Users.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthentication) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, service.ErrAuthentication.Error())
		} else {
			log.Printf("login: %v", err)
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询用户失败")
		}
		return
	}

	util.Success(c, user)
}
