package mysql

import (
	"peer_chat_server/internal/model"

	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func newSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// FindByPairKey 按规范化参与者对键查找会话
func (r *sessionRepository) FindByPairKey(pairKey string) (*model.ChatSession, error) {
	var session model.ChatSession
	if err := r.db.Where("pair_key = ?", pairKey).First(&session).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话 pair_key=%s", pairKey)
	}
	return &session, nil
}

// FindByUuid 按会话 UUID 查找会话
func (r *sessionRepository) FindByUuid(uuid string) (*model.ChatSession, error) {
	var session model.ChatSession
	if err := r.db.Where("uuid = ?", uuid).First(&session).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话 uuid=%s", uuid)
	}
	return &session, nil
}

// FindByParticipant 查找用户参与的所有会话
func (r *sessionRepository) FindByParticipant(userId string) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	if err := r.db.Where("participant_one = ? OR participant_two = ?", userId, userId).Find(&sessions).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话列表 user_id=%s", userId)
	}
	return sessions, nil
}

// Create 创建会话
// pair_key 唯一键冲突时返回 CodeAlreadyExists，由上层回查获胜行
func (r *sessionRepository) Create(session *model.ChatSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return wrapDBError(err, "创建会话")
	}
	return nil
}
