// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"peer_chat_server/internal/handler"
	"peer_chat_server/internal/infrastructure/middleware"
)

// Router 路由管理器，持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 除 WebSocket 接入（token 走 query 参数）外，全部挂在 JWT 认证组下
func (rt *Router) RegisterRoutes(engine *gin.Engine) {
	rt.RegisterWebSocketRoutes(engine)

	authed := engine.Group("/", middleware.JWTAuth())
	rt.RegisterUserRoutes(authed)
	rt.RegisterContactRoutes(authed)
	rt.RegisterSessionRoutes(authed)
	rt.RegisterMessageRoutes(authed)
}
