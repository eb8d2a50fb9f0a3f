package respond

// CounterpartInfoRespond 聊天对端信息响应
// DisplayName 经过联系人门控：对端是联系人时为显示名称，否则为原始邮箱
// ShowContactWarning 为 true 时客户端渲染"非联系人"警示条和添加入口
type CounterpartInfoRespond struct {
	UserId             string `json:"user_id"`
	DisplayName        string `json:"display_name"`
	Email              string `json:"email"`
	Online             bool   `json:"online"`
	Bio                string `json:"bio"`
	IsContact          bool   `json:"is_contact"`
	ShowContactWarning bool   `json:"show_contact_warning"`
}
