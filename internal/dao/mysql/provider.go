// Package mysql 提供 Repository 层聚合与构造
package mysql

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db      *gorm.DB
	User    UserRepository
	Contact ContactRepository
	Session SessionRepository
	Message MessageRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:      db,
		User:    newUserRepository(db),
		Contact: newContactRepository(db),
		Session: newSessionRepository(db),
		Message: newMessageRepository(db),
	}
}

// NewRepositoriesFrom 从现成的接口实现组装聚合，测试用
func NewRepositoriesFrom(user UserRepository, contact ContactRepository, session SessionRepository, message MessageRepository) *Repositories {
	return &Repositories{
		User:    user,
		Contact: contact,
		Session: session,
		Message: message,
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
