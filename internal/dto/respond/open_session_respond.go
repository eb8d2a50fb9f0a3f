package respond

// OpenSessionRespond 会话解析响应
type OpenSessionRespond struct {
	SessionId string `json:"session_id"`
}
