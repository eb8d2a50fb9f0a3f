// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 接入请求
package handler

import (
	"peer_chat_server/internal/gateway/websocket"

	"github.com/gin-gonic/gin"
)

// WsHandler WebSocket 接入处理器
type WsHandler struct {
	gateway *websocket.Gateway
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(gateway *websocket.Gateway) *WsHandler {
	return &WsHandler{gateway: gateway}
}

// Connect 升级 HTTP 连接为 WebSocket
// GET /ws/connect?token=xxx
// 连接建立即订阅实时投递通道并置为在线，断开时反向清理
func (h *WsHandler) Connect(c *gin.Context) {
	h.gateway.Serve(c)
}
