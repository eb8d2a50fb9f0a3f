// Package handler 提供 HTTP 请求处理器
// 本文件处理用户档案相关的 API 请求
package handler

import (
	"peer_chat_server/internal/dto/request"
	"peer_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetUserInfo 查询用户档案
// GET /user/getUserInfo?userId=xxx
// 响应: respond.UserInfoRespond
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	var req request.GetUserInfoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.GetUserInfo(req.UserId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMyInfo 查询当前登录用户的档案
// GET /user/getMyInfo
// 响应: respond.UserInfoRespond
func (h *UserHandler) GetMyInfo(c *gin.Context) {
	data, err := h.userSvc.GetUserInfo(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
