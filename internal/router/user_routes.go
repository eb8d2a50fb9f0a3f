// Package router 提供 HTTP 路由注册
// 本文件定义用户档案相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由（需要认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/getUserInfo", rt.handlers.User.GetUserInfo) // 查询用户档案
		userGroup.GET("/getMyInfo", rt.handlers.User.GetMyInfo)     // 查询当前用户档案
	}
}
