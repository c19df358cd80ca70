package model

import (
	"time"
)

type Post struct {
	UUIDBase
	AuthorID uint   `gorm:"index" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (Post) TableName() string {
	return "posts"
}

// PostLike 点赞中间表。(user, post) 唯一即幂等；点赞数直接数这张表，
// 不维护独立计数器。物理删除，不带 DeletedAt
type PostLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_post" json:"userId"`
	PostID    string    `gorm:"uniqueIndex:idx_user_post;size:36" json:"postId"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
