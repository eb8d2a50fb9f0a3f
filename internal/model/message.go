// Package model 定义数据库实体模型
// 本文件定义消息模型，消息创建后不可修改、不可删除
package model

import (
	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表
// 归属于唯一会话（session_id 外键），时间戳由存储层在插入时赋值
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识，雪花算法生成
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// SessionId 会话 UUID，标识消息属于哪个会话
	SessionId string `gorm:"column:session_id;index;type:char(20);not null;comment:会话uuid"`

	// SenderId 发送者 UUID
	SenderId string `gorm:"column:sender_id;index;type:char(20);not null;comment:发送者uuid"`

	// ReceiverId 接收者 UUID
	// 实时推送按此列做服务端过滤
	ReceiverId string `gorm:"column:receiver_id;index;type:char(20);not null;comment:接收者uuid"`

	// Content 消息文本内容，非空
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// CorrelationId 客户端生成的关联 id
	// 发送端据此将乐观显示的本地副本与权威回显对账
	CorrelationId string `gorm:"column:correlation_id;type:char(36);comment:客户端关联id"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
