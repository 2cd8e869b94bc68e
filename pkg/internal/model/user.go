package model

import "time"

// User 用户模型. 注册后只读，不提供更新和删除.
type User struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
	// Email 可选，存在时全局唯一；NULL 不参与唯一索引
	Email     *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EmailOrDash 模板展示用：无邮箱时显示占位符.
func (u *User) EmailOrDash() string {
	if u.Email == nil || *u.Email == "" {
		return "-"
	}

	return *u.Email
}
