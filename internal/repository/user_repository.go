package repository

import (
	"time"

	"socset_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	now := time.Now()
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", &now).
		Error
}

// FindExact 精确匹配用户名，排除自己
func (r *UserRepository) FindExact(username string, excludeID uint) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).
		Where("id <> ?", excludeID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindSimilar 用户名子串匹配，排除自己
func (r *UserRepository) FindSimilar(fragment string, excludeID uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("username LIKE ?", "%"+fragment+"%").
		Where("id <> ?", excludeID).
		Find(&users).Error
	return users, err
}
