// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 接入路由
// 浏览器 WebSocket API 不支持自定义请求头，鉴权在网关内按 query token 完成
// 请求示例: ws://host:port/wss?token=xxx
func (rt *Router) RegisterWebSocketRoutes(engine *gin.Engine) {
	engine.GET("/wss", rt.handlers.Ws.Connect)
}
