// Package user 实现用户档案业务逻辑
// 档案由外部身份服务写入，这里只做读取和在线状态维护
package user

import (
	"go.uber.org/zap"

	"peer_chat_server/internal/dao/mysql"
	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/pkg/errorx"
)

// userService 用户业务逻辑实现
type userService struct {
	repos *mysql.Repositories
}

// NewUserService 构造函数
func NewUserService(repos *mysql.Repositories) *userService {
	return &userService{repos: repos}
}

// GetUserInfo 获取单个用户档案
func (s *userService) GetUserInfo(userId string) (*respond.UserInfoRespond, error) {
	user, err := s.repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
		}
		zap.L().Error("查询用户档案失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.UserInfoRespond{
		UserId: user.Uuid,
		Name:   user.Name,
		Email:  user.Email,
		Online: user.Online,
		Bio:    user.Bio,
	}, nil
}

// SetOnline 设置在线状态标志，WebSocket 网关在连接建立/断开时调用
func (s *userService) SetOnline(userId string, online bool) error {
	if err := s.repos.User.UpdateOnline(userId, online); err != nil {
		zap.L().Error("更新在线状态失败",
			zap.String("user_id", userId),
			zap.Bool("online", online),
			zap.Error(err),
		)
		return errorx.ErrServerBusy
	}
	return nil
}
