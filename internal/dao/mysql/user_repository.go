package mysql

import (
	"peer_chat_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func newUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 按 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.UserProfile, error) {
	var user model.UserProfile
	if err := r.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByEmail 按邮箱查找用户
func (r *userRepository) FindByEmail(email string) (*model.UserProfile, error) {
	var user model.UserProfile
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 email=%s", email)
	}
	return &user, nil
}

// FindByUuids 批量按 UUID 查找用户
func (r *userRepository) FindByUuids(uuids []string) ([]model.UserProfile, error) {
	if len(uuids) == 0 {
		return []model.UserProfile{}, nil
	}
	var users []model.UserProfile
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户")
	}
	return users, nil
}

// Create 创建用户档案
func (r *userRepository) Create(user *model.UserProfile) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户档案")
	}
	return nil
}

// UpdateOnline 更新在线状态
func (r *userRepository) UpdateOnline(uuid string, online bool) error {
	if err := r.db.Model(&model.UserProfile{}).Where("uuid = ?", uuid).Update("online", online).Error; err != nil {
		return wrapDBErrorf(err, "更新在线状态 uuid=%s", uuid)
	}
	return nil
}
