// Package router 提供 HTTP 路由注册
// 本文件定义会话相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes 注册会话相关路由（需要认证）
func (rt *Router) RegisterSessionRoutes(rg *gin.RouterGroup) {
	sessionGroup := rg.Group("/session")
	{
		sessionGroup.POST("/openSession", rt.handlers.Session.OpenSession)      // 发起聊天（找到或创建会话）
		sessionGroup.GET("/getSessionList", rt.handlers.Session.GetSessionList) // 获取会话列表
	}
}
