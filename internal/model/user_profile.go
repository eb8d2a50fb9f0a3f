// Package model 定义数据库实体模型
// 本文件定义用户档案模型，由外部身份/档案服务写入，本核心只读
package model

import (
	"gorm.io/gorm"
)

// UserProfile 用户档案模型
// 对应数据库 user_profile 表
// 注册时由身份服务创建，档案编辑由外部服务完成，本核心永不删除
type UserProfile struct {
	gorm.Model

	// Uuid 用户唯一标识
	// 格式：U + 13位时间戳随机字符串，如 "U260828Ab12Cd34"
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	// Name 显示名称
	Name string `gorm:"column:name;type:varchar(40);not null;comment:显示名称"`

	// Email 邮箱地址
	// 添加联系人的查找入口，按单列唯一索引查询
	Email string `gorm:"column:email;uniqueIndex;type:varchar(60);not null;comment:邮箱"`

	// Online 在线状态标志
	Online bool `gorm:"column:online;not null;default:false;comment:在线状态"`

	// Bio 个人简介
	Bio string `gorm:"column:bio;type:varchar(200);comment:个人简介"`
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profile"
}
