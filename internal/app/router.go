package app

import (
	"socset_backend/internal/middleware"
	"socset_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.ConfigStore))
	{
		// 个人资料
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)

		// 用户检索
		authGroup.GET("/users/search", c.user.Search)

		// 好友关系
		authGroup.GET("/friendships", c.friendship.ListFriendships)
		authGroup.DELETE("/friendships/:user_id", c.friendship.RemoveFriend)
		authGroup.GET("/friend-requests", c.friendship.ListRequests)
		authGroup.POST("/friend-requests/:user_id", c.friendship.SendRequest)
		authGroup.POST("/friend-requests/:user_id/accept", c.friendship.AcceptRequest)
		authGroup.POST("/friend-requests/:user_id/decline", c.friendship.DeclineRequest)

		// 动态
		authGroup.GET("/posts", c.post.GetFeed)
		authGroup.POST("/posts", c.post.CreatePost)
		authGroup.DELETE("/posts/:id", c.post.DeletePost)
		authGroup.POST("/posts/:id/like", c.post.Like)
		authGroup.DELETE("/posts/:id/like", c.post.Unlike)

		// 私信
		authGroup.GET("/messages", c.message.Contacts)
		authGroup.GET("/messages/:user_id", c.message.Conversation)
		authGroup.POST("/messages/:user_id", c.message.SendMessage)
	}
}
