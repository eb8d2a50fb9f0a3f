// Package handler 提供 HTTP 请求处理器
// 本文件处理联系人相关的 API 请求
package handler

import (
	"peer_chat_server/internal/dto/request"
	"peer_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactHandler 联系人请求处理器
type ContactHandler struct {
	contactSvc service.ContactService
}

// NewContactHandler 创建联系人处理器实例
func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// AddContact 按邮箱添加联系人
// POST /contact/addContact
// 请求体: request.AddContactRequest
// 响应: respond.ContactRespond（新添加的联系人）
func (h *ContactHandler) AddContact(c *gin.Context) {
	var req request.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.contactSvc.AddContact(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RemoveContact 删除联系人
// POST /contact/removeContact
// 请求体: request.RemoveContactRequest
// 响应: nil（目标不在列表中时同样成功）
func (h *ContactHandler) RemoveContact(c *gin.Context) {
	var req request.RemoveContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.contactSvc.RemoveContact(currentUserId(c), req.ContactId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetContactList 获取联系人列表
// GET /contact/getContactList
// 响应: []respond.ContactRespond，按显示名称排序
func (h *ContactHandler) GetContactList(c *gin.Context) {
	data, err := h.contactSvc.GetContactList(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetCounterpartInfo 获取聊天对端信息
// GET /contact/getCounterpartInfo?counterpartId=xxx
// 响应: respond.CounterpartInfoRespond，显示名称经联系人门控
func (h *ContactHandler) GetCounterpartInfo(c *gin.Context) {
	var req request.CounterpartRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.contactSvc.GetCounterpartInfo(currentUserId(c), req.CounterpartId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
