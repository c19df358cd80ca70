package controller

import (
	"errors"

	"socset_backend/internal/service"
	"socset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// Search godoc
// @Summary 搜索用户
// @Description 先精确匹配用户名，没有再做子串匹配；结果不含自己
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param username query string true "用户名或其子串"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "没有匹配的用户"
// @Router /api/users/search [get]
func (c *UserController) Search(ctx *gin.Context) {
	username := ctx.Query("username")
	if username == "" {
		util.BadRequest(ctx, "username parameter is required")
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.UserService.Search(claims.UserID, username)
	if err != nil {
		if errors.Is(err, util.ErrNoUsersFound) {
			util.NotFound(ctx, "no users found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// 精确命中返回单个对象，模糊命中返回列表
	if result.Exact {
		util.Success(ctx, result.Users[0])
		return
	}
	util.Success(ctx, result.Users)
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body service.ProfileUpdateRequest true "要更新的字段"
// @Success 200 {object} util.Response
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}
