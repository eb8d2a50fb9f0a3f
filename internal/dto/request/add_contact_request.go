package request

// AddContactRequest 添加联系人请求
// 以邮箱为查找入口，解析失败返回 NotFound
type AddContactRequest struct {
	Email string `json:"email" binding:"required,email"`
}
