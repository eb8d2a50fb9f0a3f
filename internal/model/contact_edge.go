package model

import (
	"gorm.io/gorm"
)

// ContactEdge 联系人关系模型
// 有向边 owner -> contact，A 添加 B 不代表 B 添加了 A
// (owner_id, contact_id) 组合唯一，保证每个有序对至多一条边
type ContactEdge struct {
	gorm.Model
	OwnerId   string `gorm:"column:owner_id;uniqueIndex:idx_owner_contact;type:char(20);not null;comment:拥有者id"`
	ContactId string `gorm:"column:contact_id;uniqueIndex:idx_owner_contact;index;type:char(20);not null;comment:联系人id"`
}

func (ContactEdge) TableName() string {
	return "user_contact"
}
