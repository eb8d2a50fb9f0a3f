// Package handler 提供 HTTP 请求处理器
// 本文件处理会话相关的 API 请求
package handler

import (
	"peer_chat_server/internal/dto/request"
	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler 会话请求处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建会话处理器实例
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// OpenSession 发起聊天：找到或创建与对端的唯一会话
// POST /session/openSession
// 请求体: request.OpenSessionRequest
// 响应: respond.OpenSessionRespond
func (h *SessionHandler) OpenSession(c *gin.Context) {
	var req request.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	sessionId, err := h.sessionSvc.ResolveOrCreateSession(currentUserId(c), req.CounterpartId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, respond.OpenSessionRespond{SessionId: sessionId})
}

// GetSessionList 获取会话列表
// GET /session/getSessionList
// 响应: []respond.SessionListRespond，按最近消息时间降序
func (h *SessionHandler) GetSessionList(c *gin.Context) {
	data, err := h.sessionSvc.GetSessionList(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
