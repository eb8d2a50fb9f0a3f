package request

// OpenSessionRequest 显式发起聊天请求
// 找到或创建当前用户与对端之间的唯一会话
type OpenSessionRequest struct {
	CounterpartId string `json:"counterpart_id" binding:"required"`
}
