package request

// GetMessageListRequest 按会话拉取历史消息请求
type GetMessageListRequest struct {
	SessionId string `form:"sessionId" binding:"required"`
}
