package repository

import (
	"socset_backend/internal/model"
	"socset_backend/internal/util"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").First(&post, "id = ?", id).Error
	return &post, err
}

func (r *PostRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		// 先删点赞 (物理删除，PostLike 不支持软删除)
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", id).Error
	})
}

// FindByAuthors 可见动态查询：作者在给定集合内，按创建顺序返回
func (r *PostRepository) FindByAuthors(authorIDs []uint) ([]model.Post, error) {
	var posts []model.Post
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := r.DB.Where("author_id IN ?", authorIDs).
		Order("created_at ASC, id ASC").
		Preload("Author").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) HasLiked(userID uint, postID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostRepository) CreateLike(userID uint, postID string) error {
	return r.DB.Create(&model.PostLike{UserID: userID, PostID: postID}).Error
}

func (r *PostRepository) DeleteLike(userID uint, postID string) error {
	res := r.DB.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrNotLiked
	}
	return nil
}

// LikeCount 直接数中间表，没有独立计数器可失步
func (r *PostRepository) LikeCount(postID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *PostRepository) GetLikeUserIDs(postID string) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Order("id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
