package service

import (
	"errors"

	"socset_backend/internal/model"
	"socset_backend/internal/repository"
	"socset_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// SearchResult Exact 为真时 Users 恰好一个元素
type SearchResult struct {
	Exact bool
	Users []model.PublicProfile
}

// Search 先找精确用户名，找不到再做子串匹配；两者都排除自己
func (s *UserService) Search(callerID uint, username string) (*SearchResult, error) {
	exact, err := s.UserRepo.FindExact(username, callerID)
	if err == nil {
		return &SearchResult{
			Exact: true,
			Users: []model.PublicProfile{exact.Public()},
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	users, err := s.UserRepo.FindSimilar(username, callerID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, util.ErrNoUsersFound
	}

	profiles := make([]model.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return &SearchResult{Users: profiles}, nil
}

func (s *UserService) GetByID(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdateRequest 可更新的资料字段；nil 表示不动
type ProfileUpdateRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	ProfilePicture *string `json:"profilePicture"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
