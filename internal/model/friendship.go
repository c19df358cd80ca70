package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Friendship 好友关系表。一段关系固定写成 (user, friend) 和 (friend, user)
// 两行，"X 的好友" 用 user_id = X 一次索引查询即可。两行必须在同一事务里
// 创建和删除，复合主键挡住重复建立
type Friendship struct {
	UserID    uint      `gorm:"primaryKey" json:"userId"`
	FriendID  uint      `gorm:"primaryKey" json:"friendId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// FriendRequest 好友申请表。有序对 (from, to) 唯一；A→B 和 B→A 可以并存。
// 接受或拒绝后整行删除，不做软删除，否则唯一索引会挡住重新申请
type FriendRequest struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FromUserID uint      `gorm:"uniqueIndex:idx_from_to;not null" json:"fromUserId"`
	FromUser   User      `gorm:"foreignKey:FromUserID;references:ID;constraint:false" json:"fromUser,omitempty"`
	ToUserID   uint      `gorm:"uniqueIndex:idx_from_to;not null" json:"toUserId"`
	ToUser     User      `gorm:"foreignKey:ToUserID;references:ID;constraint:false" json:"toUser,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

func (r *FriendRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
