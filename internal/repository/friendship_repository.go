package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"socset_backend/internal/model"
	"socset_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFriendshipRepository(db *gorm.DB, rdb *redis.Client) *FriendshipRepository {
	return &FriendshipRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func friendCacheKey(userID uint) string {
	return fmt.Sprintf("socset:relation:friends:%d", userID)
}

func (r *FriendshipRepository) invalidateFriendCache(userIDs ...uint) {
	if r.Redis == nil {
		return
	}
	for _, id := range userIDs {
		r.Redis.Del(r.ctx, friendCacheKey(id))
	}
}

// IsFriend 任意一个方向存在即算好友（正常情况下两行成对，
// 但删除路径允许出现单向残留）
func (r *FriendshipRepository) IsFriend(userID, friendID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
		Count(&count).Error
	return count > 0, err
}

// GetOrCreateRequest 同一有序对只保留一条申请，返回是否新建
func (r *FriendshipRepository) GetOrCreateRequest(fromUserID, toUserID uint) (*model.FriendRequest, bool, error) {
	var req model.FriendRequest
	err := r.DB.Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		First(&req).Error
	if err == nil {
		return &req, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	req = model.FriendRequest{FromUserID: fromUserID, ToUserID: toUserID}
	if err := r.DB.Create(&req).Error; err != nil {
		return nil, false, err
	}
	return &req, true, nil
}

func (r *FriendshipRepository) GetRequest(fromUserID, toUserID uint) (*model.FriendRequest, error) {
	var req model.FriendRequest
	err := r.DB.Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		First(&req).Error
	return &req, err
}

// AcceptRequest 删除申请并写入两行对称好友关系，单个事务内完成。
// RowsAffected 守卫挡住并发二次接受；复合主键兜底，重复插入整体回滚，
// 不会留下半对好友
func (r *FriendshipRepository) AcceptRequest(fromUserID, toUserID uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
			Delete(&model.FriendRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrRequestNotFound
		}

		if err := tx.Create(&model.Friendship{UserID: toUserID, FriendID: fromUserID}).Error; err != nil {
			return err
		}
		return tx.Create(&model.Friendship{UserID: fromUserID, FriendID: toUserID}).Error
	})

	if err == nil {
		r.invalidateFriendCache(fromUserID, toUserID)
	}
	return err
}

func (r *FriendshipRepository) DeleteRequest(fromUserID, toUserID uint) error {
	res := r.DB.Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Delete(&model.FriendRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrRequestNotFound
	}
	return nil
}

// DeleteFriendship 两个方向分别删除，存在哪个删哪个；
// 单向残留按修复处理而不是报错，两边都没有才算失败
func (r *FriendshipRepository) DeleteFriendship(userID, friendID uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var removed int64

		res := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).
			Delete(&model.Friendship{})
		if res.Error != nil {
			return res.Error
		}
		removed += res.RowsAffected

		res = tx.Where("user_id = ? AND friend_id = ?", friendID, userID).
			Delete(&model.Friendship{})
		if res.Error != nil {
			return res.Error
		}
		removed += res.RowsAffected

		if removed == 0 {
			return util.ErrNotFriends
		}
		return nil
	})

	if err == nil {
		r.invalidateFriendCache(userID, friendID)
	}
	return err
}

// ListFriendships 用户出现在任意一侧的所有行
func (r *FriendshipRepository) ListFriendships(userID uint) ([]model.Friendship, error) {
	var friendships []model.Friendship
	err := r.DB.Where("user_id = ? OR friend_id = ?", userID, userID).
		Order("created_at").
		Find(&friendships).Error
	return friendships, err
}

// ListRequests 发出的和收到的申请的并集
func (r *FriendshipRepository) ListRequests(userID uint) ([]model.FriendRequest, error) {
	var reqs []model.FriendRequest
	err := r.DB.Preload("FromUser").Preload("ToUser").
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// GetFriendIDs 只获取好友的 ID 列表
func (r *FriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Table("friendships").
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, err
}

// parseFriendIDs 解码缓存集合成员，跳过防穿透哨兵 0 和解析不了的脏数据
func parseFriendIDs(members []string) []uint {
	var ids []uint
	for _, s := range members {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// GetFriendIDsCached 获取好友 ID 列表 (带缓存)
func (r *FriendshipRepository) GetFriendIDsCached(userID uint) ([]uint, error) {
	if r.Redis == nil {
		return r.GetFriendIDs(userID)
	}

	key := friendCacheKey(userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		return parseFriendIDs(cached), nil
	}

	// 缓存失效，回源数据库
	ids, err := r.GetFriendIDs(userID)
	if err == nil && len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else if err == nil {
		// 防止缓存穿透：存一个哨兵值并设置短过期时间
		r.Redis.SAdd(r.ctx, key, 0)
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, err
}
