package request

// SendMessageRequest 发送消息请求
// SessionId 为空时在发送时懒解析会话
// CorrelationId 由客户端生成，用于乐观显示条目与权威回显的对账
type SendMessageRequest struct {
	ReceiverId    string `json:"receiver_id" binding:"required"`
	SessionId     string `json:"session_id"`
	Content       string `json:"content" binding:"required"`
	CorrelationId string `json:"correlation_id"`
}
