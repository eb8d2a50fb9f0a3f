package respond

// UserInfoRespond 用户档案响应
type UserInfoRespond struct {
	UserId string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Online bool   `json:"online"`
	Bio    string `json:"bio"`
}
