// Package contact 实现联系人业务逻辑
// 联系人边是单向关系，同时充当显示名称的门控：
// 只有在对端是本人联系人时才展示其显示名称，否则展示原始邮箱
package contact

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"peer_chat_server/internal/dao/mysql"
	myredis "peer_chat_server/internal/dao/redis"
	"peer_chat_server/internal/dto/request"
	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/internal/model"
	"peer_chat_server/pkg/errorx"
)

// contactService 联系人业务逻辑实现
type contactService struct {
	repos *mysql.Repositories
	cache myredis.AsyncCacheService
}

// NewContactService 构造函数
func NewContactService(repos *mysql.Repositories, cache myredis.AsyncCacheService) *contactService {
	return &contactService{repos: repos, cache: cache}
}

// cacheKey 联系人 id 集合的缓存键（contact_relation:user:<uid>）
func cacheKey(ownerId string) string {
	return "contact_relation:user:" + ownerId
}

// contactIdSet 获取拥有者的联系人 id 集合
// 先读 Redis Set，未命中或为空时回源数据库并回填
func (s *contactService) contactIdSet(ownerId string) (map[string]struct{}, error) {
	ctx := context.Background()
	key := cacheKey(ownerId)

	memberIds, err := s.cache.GetSetMembers(ctx, key)
	if err != nil || len(memberIds) == 0 {
		edges, dbErr := s.repos.Contact.FindByOwnerId(ownerId)
		if dbErr != nil {
			zap.L().Error("查询联系人列表失败", zap.String("owner_id", ownerId), zap.Error(dbErr))
			return nil, errorx.ErrServerBusy
		}
		memberIds = make([]string, 0, len(edges))
		for _, edge := range edges {
			memberIds = append(memberIds, edge.ContactId)
		}
		if len(memberIds) > 0 {
			membersArgs := make([]interface{}, len(memberIds))
			for i, v := range memberIds {
				membersArgs[i] = v
			}
			s.cache.SubmitTask(func() {
				if err := s.cache.AddToSet(context.Background(), key, membersArgs...); err != nil {
					zap.L().Warn("回填联系人缓存失败", zap.String("key", key), zap.Error(err))
				}
			})
		}
	}

	idSet := make(map[string]struct{}, len(memberIds))
	for _, id := range memberIds {
		idSet[id] = struct{}{}
	}
	return idSet, nil
}

// invalidateCache 联系人关系变更后删除缓存集合
func (s *contactService) invalidateCache(ownerId string) {
	if err := s.cache.Delete(context.Background(), cacheKey(ownerId)); err != nil {
		zap.L().Warn("删除联系人缓存失败", zap.String("owner_id", ownerId), zap.Error(err))
	}
}

// IsContact 判断 contactId 是否在 ownerId 的联系人列表中
func (s *contactService) IsContact(ownerId, contactId string) (bool, error) {
	isMember, err := s.cache.IsSetMember(context.Background(), cacheKey(ownerId), contactId)
	if err == nil && isMember {
		return true, nil
	}
	// 缓存未命中不能区分"非联系人"和"集合未建"，需回源确认
	_, err = s.repos.Contact.FindByOwnerAndContact(ownerId, contactId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, nil
		}
		zap.L().Error("查询联系人关系失败",
			zap.String("owner_id", ownerId),
			zap.String("contact_id", contactId),
			zap.Error(err),
		)
		return false, errorx.ErrServerBusy
	}
	return true, nil
}

// AddContact 按邮箱添加联系人
// 目标邮箱不存在返回 CodeNotFound，指向自己返回 CodeSelfReference，
// 已在列表中返回 CodeAlreadyExists
func (s *contactService) AddContact(ownerId string, req request.AddContactRequest) (*respond.ContactRespond, error) {
	target, err := s.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "该邮箱未注册")
		}
		zap.L().Error("按邮箱查询用户失败", zap.String("email", req.Email), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if target.Uuid == ownerId {
		return nil, errorx.New(errorx.CodeSelfReference, "不能添加自己为联系人")
	}

	edge := &model.ContactEdge{
		OwnerId:   ownerId,
		ContactId: target.Uuid,
	}
	if err := s.repos.Contact.Create(edge); err != nil {
		if errorx.IsAlreadyExists(err) {
			return nil, errorx.New(errorx.CodeAlreadyExists, "对方已在联系人列表中")
		}
		zap.L().Error("创建联系人边失败",
			zap.String("owner_id", ownerId),
			zap.String("contact_id", target.Uuid),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}
	s.invalidateCache(ownerId)

	zap.L().Info("添加联系人成功",
		zap.String("owner_id", ownerId),
		zap.String("contact_id", target.Uuid),
	)
	return &respond.ContactRespond{
		UserId: target.Uuid,
		Name:   target.Name,
		Email:  target.Email,
		Online: target.Online,
	}, nil
}

// RemoveContact 删除联系人
// 只删除 ownerId -> contactId 这一条单向边；目标不在列表中时静默成功
func (s *contactService) RemoveContact(ownerId, contactId string) error {
	if err := s.repos.Contact.DeleteByOwnerAndContact(ownerId, contactId); err != nil {
		zap.L().Error("删除联系人边失败",
			zap.String("owner_id", ownerId),
			zap.String("contact_id", contactId),
			zap.Error(err),
		)
		return errorx.ErrServerBusy
	}
	s.invalidateCache(ownerId)
	return nil
}

// GetContactList 获取联系人列表，按显示名称排序
func (s *contactService) GetContactList(ownerId string) ([]respond.ContactRespond, error) {
	idSet, err := s.contactIdSet(ownerId)
	if err != nil {
		return nil, err
	}
	if len(idSet) == 0 {
		return []respond.ContactRespond{}, nil
	}

	memberIds := make([]string, 0, len(idSet))
	for id := range idSet {
		memberIds = append(memberIds, id)
	}
	users, err := s.repos.User.FindByUuids(memberIds)
	if err != nil {
		zap.L().Error("批量查询联系人档案失败", zap.String("owner_id", ownerId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	contactList := make([]respond.ContactRespond, 0, len(users))
	for _, u := range users {
		contactList = append(contactList, respond.ContactRespond{
			UserId: u.Uuid,
			Name:   u.Name,
			Email:  u.Email,
			Online: u.Online,
		})
	}
	sort.Slice(contactList, func(i, j int) bool {
		return contactList[i].Name < contactList[j].Name
	})
	return contactList, nil
}

// GetCounterpartInfo 获取聊天对端信息
// 对端是联系人时 DisplayName 为其显示名称，否则为原始邮箱并携带警示标志
func (s *contactService) GetCounterpartInfo(ownerId, counterpartId string) (*respond.CounterpartInfoRespond, error) {
	counterpart, err := s.repos.User.FindByUuid(counterpartId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
		}
		zap.L().Error("查询对端用户失败", zap.String("counterpart_id", counterpartId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	isContact, err := s.IsContact(ownerId, counterpartId)
	if err != nil {
		return nil, err
	}
	displayName := counterpart.Email
	if isContact {
		displayName = counterpart.Name
	}
	return &respond.CounterpartInfoRespond{
		UserId:             counterpart.Uuid,
		DisplayName:        displayName,
		Email:              counterpart.Email,
		Online:             counterpart.Online,
		Bio:                counterpart.Bio,
		IsContact:          isContact,
		ShowContactWarning: !isContact,
	}, nil
}
