// Package router 提供 HTTP 路由注册
// 本文件定义联系人相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterContactRoutes 注册联系人相关路由（需要认证）
func (rt *Router) RegisterContactRoutes(rg *gin.RouterGroup) {
	contactGroup := rg.Group("/contact")
	{
		contactGroup.POST("/addContact", rt.handlers.Contact.AddContact)                // 按邮箱添加联系人
		contactGroup.POST("/removeContact", rt.handlers.Contact.RemoveContact)          // 删除联系人
		contactGroup.GET("/getContactList", rt.handlers.Contact.GetContactList)         // 获取联系人列表
		contactGroup.GET("/getCounterpartInfo", rt.handlers.Contact.GetCounterpartInfo) // 获取聊天对端信息
	}
}
