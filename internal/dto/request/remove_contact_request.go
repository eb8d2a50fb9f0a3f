package request

// RemoveContactRequest 删除联系人请求
type RemoveContactRequest struct {
	ContactId string `json:"contact_id" binding:"required"`
}
