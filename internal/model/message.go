package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message 私信表。只追加不修改；is_read 目前没有接口翻转，保留字段
type Message struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SenderID    uint      `gorm:"index;index:idx_pair_created" json:"senderId"`
	Sender      User      `gorm:"foreignKey:SenderID;constraint:false" json:"sender,omitempty"`
	RecipientID uint      `gorm:"index;index:idx_pair_created" json:"recipientId"`
	Recipient   User      `gorm:"foreignKey:RecipientID;constraint:false" json:"recipient,omitempty"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsRead      bool      `gorm:"default:false" json:"isRead"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_pair_created" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
