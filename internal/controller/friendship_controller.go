package controller

import (
	"errors"
	"strconv"

	"socset_backend/internal/service"
	"socset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendshipController struct {
	FriendshipService *service.FriendshipService
}

func NewFriendshipController(friendshipService *service.FriendshipService) *FriendshipController {
	return &FriendshipController{FriendshipService: friendshipService}
}

func parseUserIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return 0, false
	}
	return uint(id), true
}

// relationshipError 关系状态机错误到状态码的统一翻译
func relationshipError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSelfTarget),
		errors.Is(err, util.ErrAlreadyFriends):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrRequestNotFound),
		errors.Is(err, util.ErrNotFriends):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// SendRequest godoc
// @Summary 发送好友申请
// @Description 重复发送不报错：首次 201，已存在 200
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param user_id path int true "对方用户 ID"
// @Success 201 {object} util.Response "申请已创建"
// @Success 200 {object} util.Response "申请已存在"
// @Failure 400 {object} util.Response "不能加自己 / 已是好友"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/friend-requests/{user_id} [post]
func (c *FriendshipController) SendRequest(ctx *gin.Context) {
	targetID, ok := parseUserIDParam(ctx, "user_id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	created, err := c.FriendshipService.SendRequest(claims.UserID, targetID)
	if err != nil {
		relationshipError(ctx, err)
		return
	}

	if created {
		util.Created(ctx, gin.H{"message": "friend request sent"})
		return
	}
	util.Success(ctx, gin.H{"message": "friend request already exists"})
}

// AcceptRequest godoc
// @Summary 接受好友申请
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param user_id path int true "申请方用户 ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "不能接受自己 / 已是好友"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/friend-requests/{user_id}/accept [post]
func (c *FriendshipController) AcceptRequest(ctx *gin.Context) {
	requesterID, ok := parseUserIDParam(ctx, "user_id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.FriendshipService.AcceptRequest(claims.UserID, requesterID); err != nil {
		relationshipError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "friend request accepted"})
}

// DeclineRequest godoc
// @Summary 拒绝好友申请
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param user_id path int true "申请方用户 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/friend-requests/{user_id}/decline [post]
func (c *FriendshipController) DeclineRequest(ctx *gin.Context) {
	requesterID, ok := parseUserIDParam(ctx, "user_id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.FriendshipService.DeclineRequest(claims.UserID, requesterID); err != nil {
		relationshipError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "friend request declined"})
}

// RemoveFriend godoc
// @Summary 删除好友
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param user_id path int true "好友用户 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "好友关系不存在"
// @Router /api/friendships/{user_id} [delete]
func (c *FriendshipController) RemoveFriend(ctx *gin.Context) {
	friendID, ok := parseUserIDParam(ctx, "user_id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.FriendshipService.RemoveFriend(claims.UserID, friendID); err != nil {
		relationshipError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "friend removed"})
}

// ListFriendships godoc
// @Summary 好友关系列表
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/friendships [get]
func (c *FriendshipController) ListFriendships(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	friendships, err := c.FriendshipService.ListFriendships(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, friendships)
}

// ListRequests godoc
// @Summary 好友申请列表
// @Description 发出的和收到的并集
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/friend-requests [get]
func (c *FriendshipController) ListRequests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	requests, err := c.FriendshipService.ListRequests(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, requests)
}
