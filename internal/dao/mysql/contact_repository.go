package mysql

import (
	"peer_chat_server/internal/model"

	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

func newContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// FindByOwnerAndContact 按拥有者和联系人查找边
func (r *contactRepository) FindByOwnerAndContact(ownerId, contactId string) (*model.ContactEdge, error) {
	var edge model.ContactEdge
	if err := r.db.Where("owner_id = ? AND contact_id = ?", ownerId, contactId).First(&edge).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询联系人边 owner_id=%s contact_id=%s", ownerId, contactId)
	}
	return &edge, nil
}

// FindByOwnerId 查找拥有者的所有联系人边
func (r *contactRepository) FindByOwnerId(ownerId string) ([]model.ContactEdge, error) {
	var edges []model.ContactEdge
	if err := r.db.Where("owner_id = ?", ownerId).Find(&edges).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询联系人列表 owner_id=%s", ownerId)
	}
	return edges, nil
}

// Create 创建联系人边
// (owner_id, contact_id) 唯一索引兜底并发下的重复创建
func (r *contactRepository) Create(edge *model.ContactEdge) error {
	if err := r.db.Create(edge).Error; err != nil {
		return wrapDBError(err, "创建联系人边")
	}
	return nil
}

// DeleteByOwnerAndContact 按过滤条件删除边
// 零匹配静默成功；物理删除，软删除残留会和唯一索引冲突导致无法重新添加
func (r *contactRepository) DeleteByOwnerAndContact(ownerId, contactId string) error {
	if err := r.db.Unscoped().Where("owner_id = ? AND contact_id = ?", ownerId, contactId).Delete(&model.ContactEdge{}).Error; err != nil {
		return wrapDBErrorf(err, "删除联系人边 owner_id=%s contact_id=%s", ownerId, contactId)
	}
	return nil
}
