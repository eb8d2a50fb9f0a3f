package respond

// MessageRespond 消息响应
// 历史拉取与实时推送共用同一结构
// Uuid 用字符串承载雪花 id，避免 JavaScript 侧精度丢失
type MessageRespond struct {
	Uuid          string `json:"uuid"`
	SessionId     string `json:"session_id"`
	SenderId      string `json:"sender_id"`
	ReceiverId    string `json:"receiver_id"`
	Content       string `json:"content"`
	CorrelationId string `json:"correlation_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}
