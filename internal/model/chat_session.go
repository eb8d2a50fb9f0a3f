// Package model 定义数据库实体模型
// 本文件定义会话模型，一个会话唯一对应一对用户
package model

import (
	"strings"

	"gorm.io/gorm"
)

// ChatSession 会话模型
// 对应数据库 chat_session 表
// 首条消息或显式"发起聊天"时懒创建，永不删除
// pair_key 上的唯一索引保证每对用户至多一个会话：并发创建时
// 后到者触发唯一键冲突，由上层回查获胜行
type ChatSession struct {
	gorm.Model

	// Uuid 会话唯一标识
	// 格式：S + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:会话uuid"`

	// ParticipantOne / ParticipantTwo 参与者，按字典序规范化存储
	ParticipantOne string `gorm:"column:participant_one;index;type:char(20);not null;comment:参与者一"`
	ParticipantTwo string `gorm:"column:participant_two;index;type:char(20);not null;comment:参与者二"`

	// PairKey 规范化参与者对键，"低id:高id"
	PairKey string `gorm:"column:pair_key;uniqueIndex;type:char(41);not null;comment:参与者对键"`
}

// TableName 指定表名
func (ChatSession) TableName() string {
	return "chat_session"
}

// NormalizePair 将两个用户 id 规范化为（低，高）顺序
func NormalizePair(userA, userB string) (string, string) {
	if strings.Compare(userA, userB) > 0 {
		return userB, userA
	}
	return userA, userB
}

// PairKeyOf 计算一对用户的规范化会话键，与参数顺序无关
func PairKeyOf(userA, userB string) string {
	low, high := NormalizePair(userA, userB)
	return low + ":" + high
}
