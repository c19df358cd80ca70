package repository

import (
	"socset_backend/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(msg *model.Message) error {
	return r.DB.Create(msg).Error
}

// GetConversation 两个方向的全部消息，按时间升序；
// created_at 相同再按 id 排，保证输出稳定
func (r *MessageRepository) GetConversation(userA, userB uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.DB.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// GetContactIDs 与该用户交换过至少一条消息的用户 ID，
// 发送方和接收方两个角色合并去重
func (r *MessageRepository) GetContactIDs(userID uint) ([]uint, error) {
	var sentTo []uint
	if err := r.DB.Model(&model.Message{}).
		Where("sender_id = ?", userID).
		Distinct().
		Pluck("recipient_id", &sentTo).Error; err != nil {
		return nil, err
	}

	var receivedFrom []uint
	if err := r.DB.Model(&model.Message{}).
		Where("recipient_id = ?", userID).
		Distinct().
		Pluck("sender_id", &receivedFrom).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(sentTo)+len(receivedFrom))
	var ids []uint
	for _, id := range append(sentTo, receivedFrom...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
