package service

import (
	"strings"
	"time"

	"socset_backend/internal/model"
	"socset_backend/internal/repository"
	"socset_backend/internal/util"
)

type MessageService struct {
	MessageRepo *repository.MessageRepository
	UserRepo    *repository.UserRepository
}

func NewMessageService(messageRepo *repository.MessageRepository, userRepo *repository.UserRepository) *MessageService {
	return &MessageService{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
	}
}

type MessageResponse struct {
	ID          string    `json:"id"`
	SenderID    uint      `json:"senderId"`
	RecipientID uint      `json:"recipientId"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}

// SendMessage 只校验接收者存在；给自己发消息不拦
func (s *MessageService) SendMessage(senderID, recipientID uint, content string) (*MessageResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, util.ErrEmptyContent
	}
	if _, err := s.UserRepo.FindByID(recipientID); err != nil {
		return nil, util.ErrUserNotFound
	}

	msg := &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.MessageRepo.Create(msg); err != nil {
		return nil, err
	}

	resp := toMessageResponse(msg)
	return &resp, nil
}

// Conversation 双向消息合并按时间升序。空结果按"对话不存在"报 404，
// 调用方要区分"还没聊过"和参与者非法
func (s *MessageService) Conversation(userID, otherID uint) ([]MessageResponse, error) {
	messages, err := s.MessageRepo.GetConversation(userID, otherID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, util.ErrConversationNotFound
	}

	result := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, toMessageResponse(&messages[i]))
	}
	return result, nil
}

// Contacts 与该用户有过往来消息的用户集合
func (s *MessageService) Contacts(userID uint) ([]model.PublicProfile, error) {
	ids, err := s.MessageRepo.GetContactIDs(userID)
	if err != nil {
		return nil, err
	}

	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	profiles := make([]model.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return profiles, nil
}
