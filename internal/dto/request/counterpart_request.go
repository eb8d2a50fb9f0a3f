package request

// CounterpartRequest 以对端用户为参数的查询请求
// 用于联系人判定、对端信息、按参与者加载历史等接口
type CounterpartRequest struct {
	CounterpartId string `form:"counterpartId" binding:"required"`
}
