package respond

// ContactRespond 联系人条目响应
type ContactRespond struct {
	UserId string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Online bool   `json:"online"`
}
