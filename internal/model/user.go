package model

import (
	"time"
)

// User 用户表。注册创建，资料可更新，范围内不做物理删除
type User struct {
	BaseModel
	Username       string     `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"size:100;not null" json:"-"`
	FirstName      string     `gorm:"size:30" json:"firstName"`
	LastName       string     `gorm:"size:30" json:"lastName"`
	ProfilePicture string     `gorm:"size:200" json:"profilePicture"`
	IsActive       bool       `gorm:"default:true" json:"isActive"`
	IsStaff        bool       `gorm:"default:false" json:"isStaff"`
	LastLogin      *time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// PublicProfile 对其他用户可见的字段子集
type PublicProfile struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}
