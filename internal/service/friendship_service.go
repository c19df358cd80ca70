package service

import (
	"errors"
	"strings"
	"time"

	"socset_backend/internal/model"
	"socset_backend/internal/repository"
	"socset_backend/internal/util"
	"socset_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type FriendshipService struct {
	FriendRepo *repository.FriendshipRepository
	UserRepo   *repository.UserRepository
}

func NewFriendshipService(friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository) *FriendshipService {
	return &FriendshipService{
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
	}
}

// FriendshipResponse 单行好友关系的展开结果
type FriendshipResponse struct {
	User      model.PublicProfile `json:"user"`
	Friend    model.PublicProfile `json:"friend"`
	CreatedAt time.Time           `json:"createdAt"`
}

// FriendRequestResponse 好友申请的展开结果
type FriendRequestResponse struct {
	FromUser  model.PublicProfile `json:"fromUser"`
	ToUser    model.PublicProfile `json:"toUser"`
	CreatedAt time.Time           `json:"createdAt"`
}

// isDuplicateKey 唯一约束冲突。mysql 和 sqlite 的报错文案不同，
// gorm 只有开了 TranslateError 才会包成 ErrDuplicatedKey，这里都认
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func (s *FriendshipService) requireUser(userID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return nil
}

// SendRequest 发起好友申请。重复发起不报错，返回 false 表示申请已存在
func (s *FriendshipService) SendRequest(requesterID, targetID uint) (bool, error) {
	if requesterID == targetID {
		return false, util.ErrSelfTarget
	}
	if err := s.requireUser(targetID); err != nil {
		return false, err
	}

	isFriend, err := s.FriendRepo.IsFriend(requesterID, targetID)
	if err != nil {
		return false, err
	}
	if isFriend {
		return false, util.ErrAlreadyFriends
	}

	_, created, err := s.FriendRepo.GetOrCreateRequest(requesterID, targetID)
	if err != nil {
		// 并发下第二个写入者撞唯一索引，等价于"申请已存在"
		if isDuplicateKey(err) {
			return false, nil
		}
		return false, err
	}

	if created {
		monitoring.RelationshipOps.WithLabelValues("sent").Inc()
	}
	return created, nil
}

// AcceptRequest 接受 requester 发来的申请：删申请、建两行好友关系，
// 原子性由仓库层事务保证
func (s *FriendshipService) AcceptRequest(accepterID, requesterID uint) error {
	if accepterID == requesterID {
		return util.ErrSelfTarget
	}
	if err := s.requireUser(requesterID); err != nil {
		return err
	}

	if _, err := s.FriendRepo.GetRequest(requesterID, accepterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrRequestNotFound
		}
		return err
	}

	isFriend, err := s.FriendRepo.IsFriend(accepterID, requesterID)
	if err != nil {
		return err
	}
	if isFriend {
		return util.ErrAlreadyFriends
	}

	if err := s.FriendRepo.AcceptRequest(requesterID, accepterID); err != nil {
		if isDuplicateKey(err) {
			// 并发二次接受，事务已整体回滚
			return util.ErrAlreadyFriends
		}
		return err
	}

	monitoring.RelationshipOps.WithLabelValues("accepted").Inc()
	return nil
}

// DeclineRequest 拒绝申请，删除后不留痕迹
func (s *FriendshipService) DeclineRequest(declinerID, requesterID uint) error {
	if err := s.requireUser(requesterID); err != nil {
		return err
	}
	if err := s.FriendRepo.DeleteRequest(requesterID, declinerID); err != nil {
		return err
	}
	monitoring.RelationshipOps.WithLabelValues("declined").Inc()
	return nil
}

func (s *FriendshipService) RemoveFriend(userID, friendID uint) error {
	if err := s.requireUser(friendID); err != nil {
		return err
	}
	if err := s.FriendRepo.DeleteFriendship(userID, friendID); err != nil {
		return err
	}
	monitoring.RelationshipOps.WithLabelValues("removed").Inc()
	return nil
}

// ListFriendships 用户出现在任意一侧的行，展开双方公开资料
func (s *FriendshipService) ListFriendships(userID uint) ([]FriendshipResponse, error) {
	friendships, err := s.FriendRepo.ListFriendships(userID)
	if err != nil {
		return nil, err
	}

	idSet := make(map[uint]bool)
	var ids []uint
	for _, f := range friendships {
		for _, id := range []uint{f.UserID, f.FriendID} {
			if !idSet[id] {
				idSet[id] = true
				ids = append(ids, id)
			}
		}
	}

	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	profiles := make(map[uint]model.PublicProfile, len(users))
	for _, u := range users {
		profiles[u.ID] = u.Public()
	}

	result := make([]FriendshipResponse, 0, len(friendships))
	for _, f := range friendships {
		result = append(result, FriendshipResponse{
			User:      profiles[f.UserID],
			Friend:    profiles[f.FriendID],
			CreatedAt: f.CreatedAt,
		})
	}
	return result, nil
}

// ListRequests 发出和收到的申请的并集
func (s *FriendshipService) ListRequests(userID uint) ([]FriendRequestResponse, error) {
	reqs, err := s.FriendRepo.ListRequests(userID)
	if err != nil {
		return nil, err
	}

	result := make([]FriendRequestResponse, 0, len(reqs))
	for _, req := range reqs {
		result = append(result, FriendRequestResponse{
			FromUser:  req.FromUser.Public(),
			ToUser:    req.ToUser.Public(),
			CreatedAt: req.CreatedAt,
		})
	}
	return result, nil
}
