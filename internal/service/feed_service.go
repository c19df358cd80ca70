package service

import (
	"errors"
	"strings"
	"time"

	"socset_backend/internal/model"
	"socset_backend/internal/repository"
	"socset_backend/internal/util"

	"gorm.io/gorm"
)

// FeedService 动态可见域：自己的帖子加好友的帖子。
// 好友集合走 FriendshipRepository 的缓存通道
type FeedService struct {
	PostRepo   *repository.PostRepository
	FriendRepo *repository.FriendshipRepository
	UserRepo   *repository.UserRepository
}

func NewFeedService(postRepo *repository.PostRepository, friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository) *FeedService {
	return &FeedService{
		PostRepo:   postRepo,
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
	}
}

type PostResponse struct {
	ID        string              `json:"id"`
	Author    model.PublicProfile `json:"author"`
	Content   string              `json:"content"`
	CreatedAt time.Time           `json:"createdAt"`
	Likes     []uint              `json:"likes"`
	LikeCount int                 `json:"likeCount"`
}

func (s *FeedService) toPostResponse(post *model.Post) (*PostResponse, error) {
	likes, err := s.PostRepo.GetLikeUserIDs(post.ID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []uint{}
	}
	return &PostResponse{
		ID:        post.ID,
		Author:    post.Author.Public(),
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		Likes:     likes,
		LikeCount: len(likes),
	}, nil
}

// VisiblePosts 自己的加好友的，按创建顺序；排序交给调用方
func (s *FeedService) VisiblePosts(userID uint) ([]PostResponse, error) {
	friendIDs, err := s.FriendRepo.GetFriendIDsCached(userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.PostRepo.FindByAuthors(append(friendIDs, userID))
	if err != nil {
		return nil, err
	}

	result := make([]PostResponse, 0, len(posts))
	for i := range posts {
		resp, err := s.toPostResponse(&posts[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (s *FeedService) CreatePost(authorID uint, content string) (*PostResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, util.ErrEmptyContent
	}

	post := &model.Post{
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}

	author, err := s.UserRepo.FindByID(authorID)
	if err != nil {
		return nil, err
	}
	post.Author = *author

	return s.toPostResponse(post)
}

// DeletePost 只有作者本人能删；连带点赞一起删
func (s *FeedService) DeletePost(requesterID uint, postID string) error {
	post, err := s.getPost(postID)
	if err != nil {
		return err
	}

	if post.AuthorID != requesterID {
		return util.ErrPermissionDenied
	}

	return s.PostRepo.Delete(postID)
}

// Like 重复点赞报错而不是静默跳过
func (s *FeedService) Like(userID uint, postID string) error {
	if _, err := s.getPost(postID); err != nil {
		return err
	}

	liked, err := s.PostRepo.HasLiked(userID, postID)
	if err != nil {
		return err
	}
	if liked {
		return util.ErrAlreadyLiked
	}

	if err := s.PostRepo.CreateLike(userID, postID); err != nil {
		// 并发下撞唯一索引，同样当作重复点赞
		if isDuplicateKey(err) {
			return util.ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (s *FeedService) Unlike(userID uint, postID string) error {
	if _, err := s.getPost(postID); err != nil {
		return err
	}
	return s.PostRepo.DeleteLike(userID, postID)
}

func (s *FeedService) LikeCount(postID string) (int64, error) {
	if _, err := s.getPost(postID); err != nil {
		return 0, err
	}
	return s.PostRepo.LikeCount(postID)
}

func (s *FeedService) getPost(postID string) (*model.Post, error) {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
