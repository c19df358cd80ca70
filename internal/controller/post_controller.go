package controller

import (
	"errors"

	"socset_backend/internal/service"
	"socset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	FeedService *service.FeedService
}

func NewPostController(feedService *service.FeedService) *PostController {
	return &PostController{FeedService: feedService}
}

type PostCreateRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetFeed godoc
// @Summary 可见动态
// @Description 自己的帖子加好友的帖子，按创建顺序
// @Tags 动态
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/posts [get]
func (c *PostController) GetFeed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	posts, err := c.FeedService.VisiblePosts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// CreatePost godoc
// @Summary 发布动态
// @Tags 动态
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body PostCreateRequest true "帖子内容"
// @Success 201 {object} util.Response
// @Router /api/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req PostCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	post, err := c.FeedService.CreatePost(claims.UserID, req.Content)
	if err != nil {
		if errors.Is(err, util.ErrEmptyContent) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, post)
}

// DeletePost godoc
// @Summary 删除动态
// @Description 仅作者本人可删
// @Tags 动态
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "帖子 ID"
// @Success 204 "删除成功"
// @Failure 403 {object} util.Response "不是作者"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	postID := ctx.Param("id")

	claims := util.GetUserFromContext(ctx)
	if err := c.FeedService.DeletePost(claims.UserID, postID); err != nil {
		postError(ctx, err)
		return
	}

	util.NoContent(ctx)
}

// Like godoc
// @Summary 点赞
// @Description 重复点赞报 400，不静默
// @Tags 动态
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "帖子 ID"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "已点过赞"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id}/like [post]
func (c *PostController) Like(ctx *gin.Context) {
	postID := ctx.Param("id")

	claims := util.GetUserFromContext(ctx)
	if err := c.FeedService.Like(claims.UserID, postID); err != nil {
		postError(ctx, err)
		return
	}

	count, err := c.FeedService.LikeCount(postID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"likeCount": count})
}

// Unlike godoc
// @Summary 取消点赞
// @Tags 动态
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "帖子 ID"
// @Success 204 "取消成功"
// @Failure 400 {object} util.Response "没点过赞"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id}/like [delete]
func (c *PostController) Unlike(ctx *gin.Context) {
	postID := ctx.Param("id")

	claims := util.GetUserFromContext(ctx)
	if err := c.FeedService.Unlike(claims.UserID, postID); err != nil {
		postError(ctx, err)
		return
	}

	util.NoContent(ctx)
}

func postError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPostNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAlreadyLiked),
		errors.Is(err, util.ErrNotLiked):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
