package controller

import (
	"errors"

	"socset_backend/internal/service"
	"socset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	MessageService *service.MessageService
}

func NewMessageController(messageService *service.MessageService) *MessageController {
	return &MessageController{MessageService: messageService}
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage godoc
// @Summary 发送私信
// @Tags 私信
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param user_id path int true "接收者用户 ID"
// @Param body body SendMessageRequest true "消息内容"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response "接收者不存在"
// @Router /api/messages/{user_id} [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	recipientID, ok := parseUserIDParam(ctx, "user_id")
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	msg, err := c.MessageService.SendMessage(claims.UserID, recipientID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrEmptyContent):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, msg)
}

// Conversation godoc
// @Summary 与指定用户的完整对话
// @Description 双向消息按时间升序；一条都没有按 404 处理
// @Tags 私信
// @Produce  json
// @Security ApiKeyAuth
// @Param user_id path int true "对方用户 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "对话不存在"
// @Router /api/messages/{user_id} [get]
func (c *MessageController) Conversation(ctx *gin.Context) {
	otherID, ok := parseUserIDParam(ctx, "user_id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	messages, err := c.MessageService.Conversation(claims.UserID, otherID)
	if err != nil {
		if errors.Is(err, util.ErrConversationNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, messages)
}

// Contacts godoc
// @Summary 私信往来用户列表
// @Description 与当前用户交换过至少一条消息的用户，去重后返回
// @Tags 私信
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/messages [get]
func (c *MessageController) Contacts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	contacts, err := c.MessageService.Contacts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, contacts)
}
