package respond

// SessionListRespond 会话列表条目响应
// CounterpartName 经过联系人门控：非联系人显示原始邮箱
type SessionListRespond struct {
	SessionId        string `json:"session_id"`
	CounterpartId    string `json:"counterpart_id"`
	CounterpartName  string `json:"counterpart_name"`
	CounterpartEmail string `json:"counterpart_email"`
	IsContact        bool   `json:"is_contact"`
	Online           bool   `json:"online"`
	LastMessage      string `json:"last_message"`
	LastMessageAt    string `json:"last_message_at"`
}
