// Package session 实现会话解析业务逻辑
// 一对用户之间最多存在一个会话：参与者对经字典序规范化后生成 pair_key，
// 数据库唯一索引保证并发创建时只有一个胜出者
package session

import (
	"fmt"

	"go.uber.org/zap"

	"peer_chat_server/internal/dao/mysql"
	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/internal/model"
	"peer_chat_server/pkg/errorx"
	"peer_chat_server/pkg/util/random"
)

// sessionService 会话业务逻辑实现
type sessionService struct {
	repos *mysql.Repositories
}

// NewSessionService 构造函数
func NewSessionService(repos *mysql.Repositories) *sessionService {
	return &sessionService{repos: repos}
}

// ResolveOrCreateSession 找到或创建两个用户之间的唯一会话
// 幂等且对称：任一方向、任意次数的调用返回同一个会话 id
func (s *sessionService) ResolveOrCreateSession(userId, counterpartId string) (string, error) {
	if userId == counterpartId {
		return "", errorx.New(errorx.CodeSelfReference, "不能与自己建立会话")
	}

	// 1. 按规范化对键查找既有会话
	pairKey := model.PairKeyOf(userId, counterpartId)
	existing, err := s.repos.Session.FindByPairKey(pairKey)
	if err == nil {
		return existing.Uuid, nil
	}
	if !errorx.IsNotFound(err) {
		zap.L().Error("按对键查询会话失败", zap.String("pair_key", pairKey), zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	// 2. 旧数据回退：从双方既有消息中提取已关联的会话 id
	legacyId, err := s.repos.Message.FindSessionIdByParticipants(userId, counterpartId)
	if err != nil {
		zap.L().Error("回退扫描消息会话失败",
			zap.String("user_id", userId),
			zap.String("counterpart_id", counterpartId),
			zap.Error(err),
		)
		return "", errorx.ErrServerBusy
	}
	if legacyId != "" {
		return legacyId, nil
	}

	// 3. 验证对端存在
	if _, err := s.repos.User.FindByUuid(counterpartId); err != nil {
		if errorx.IsNotFound(err) {
			return "", errorx.New(errorx.CodeNotFound, "对端用户不存在")
		}
		zap.L().Error("查询对端用户失败", zap.String("counterpart_id", counterpartId), zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	// 4. 创建新会话
	participantOne, participantTwo := model.NormalizePair(userId, counterpartId)
	session := &model.ChatSession{
		Uuid:           fmt.Sprintf("S%s", random.GetNowAndLenRandomString(11)),
		ParticipantOne: participantOne,
		ParticipantTwo: participantTwo,
		PairKey:        pairKey,
	}
	if err := s.repos.Session.Create(session); err != nil {
		// 并发双发：唯一键冲突说明对方先建成，回查胜出者
		if errorx.IsAlreadyExists(err) {
			winner, findErr := s.repos.Session.FindByPairKey(pairKey)
			if findErr != nil {
				zap.L().Error("唯一键冲突后回查会话失败", zap.String("pair_key", pairKey), zap.Error(findErr))
				return "", errorx.ErrServerBusy
			}
			return winner.Uuid, nil
		}
		zap.L().Error("创建会话失败", zap.String("pair_key", pairKey), zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	zap.L().Info("创建会话成功",
		zap.String("session_id", session.Uuid),
		zap.String("pair_key", pairKey),
	)
	return session.Uuid, nil
}

// GetSessionList 获取用户的会话列表
// 按每个会话的最近一条消息聚合，最近活跃的会话排在前面；
// 对端名称经过联系人门控，非联系人显示原始邮箱
func (s *sessionService) GetSessionList(userId string) ([]respond.SessionListRespond, error) {
	messages, err := s.repos.Message.FindLatestByParticipant(userId)
	if err != nil {
		zap.L().Error("查询用户消息失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(messages) == 0 {
		return []respond.SessionListRespond{}, nil
	}

	// messages 按 created_at 降序，首次出现的即该会话最近一条
	type latestEntry struct {
		message       model.Message
		counterpartId string
	}
	seen := make(map[string]struct{})
	latest := make([]latestEntry, 0)
	counterpartIds := make([]string, 0)
	for _, msg := range messages {
		counterpartId := msg.ReceiverId
		if msg.ReceiverId == userId {
			counterpartId = msg.SenderId
		}
		// 旧数据可能没有会话 id，退化为按参与者对聚合
		key := msg.SessionId
		if key == "" {
			key = model.PairKeyOf(msg.SenderId, msg.ReceiverId)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		latest = append(latest, latestEntry{message: msg, counterpartId: counterpartId})
		counterpartIds = append(counterpartIds, counterpartId)
	}

	users, err := s.repos.User.FindByUuids(counterpartIds)
	if err != nil {
		zap.L().Error("批量查询对端档案失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	profiles := make(map[string]model.UserProfile, len(users))
	for _, u := range users {
		profiles[u.Uuid] = u
	}

	edges, err := s.repos.Contact.FindByOwnerId(userId)
	if err != nil {
		zap.L().Error("查询联系人列表失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	contactSet := make(map[string]struct{}, len(edges))
	for _, edge := range edges {
		contactSet[edge.ContactId] = struct{}{}
	}

	sessionList := make([]respond.SessionListRespond, 0, len(latest))
	for _, entry := range latest {
		profile, ok := profiles[entry.counterpartId]
		if !ok {
			continue
		}
		_, isContact := contactSet[entry.counterpartId]
		name := profile.Email
		if isContact {
			name = profile.Name
		}
		sessionList = append(sessionList, respond.SessionListRespond{
			SessionId:        entry.message.SessionId,
			CounterpartId:    entry.counterpartId,
			CounterpartName:  name,
			CounterpartEmail: profile.Email,
			IsContact:        isContact,
			Online:           profile.Online,
			LastMessage:      entry.message.Content,
			LastMessageAt:    entry.message.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return sessionList, nil
}
