package request

// GetUserInfoRequest 查询用户档案请求
type GetUserInfoRequest struct {
	UserId string `form:"userId" binding:"required"`
}
