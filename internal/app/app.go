package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socset_backend/internal/config"
	"socset_backend/internal/controller"
	"socset_backend/internal/repository"
	"socset_backend/internal/service"
	"socset_backend/pkg/database"
	"socset_backend/pkg/logger"
	"socset_backend/pkg/monitoring"
	"socset_backend/pkg/security"
	"socset_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config      *config.Config
	ConfigStore *config.Store
	Router      *gin.Engine
	DB          *gorm.DB
	Redis       *redis.Client

	tracerProvider interface {
		Shutdown(ctx context.Context) error
	}
}

// ReloadConfig 热更新入口：整体换指针，不覆写在用的结构体。
// 目前只对认证中间件读取的 JWT 密钥生效，限流参数和日志器在启动时定值
func (a *App) ReloadConfig(cfg *config.Config) {
	a.ConfigStore.Swap(cfg)
	logger.Log.Info("Config reloaded")
}

type repositories struct {
	user       *repository.UserRepository
	friendship *repository.FriendshipRepository
	message    *repository.MessageRepository
	post       *repository.PostRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	friendship *service.FriendshipService
	message    *service.MessageService
	feed       *service.FeedService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	friendship *controller.FriendshipController
	message    *controller.MessageController
	post       *controller.PostController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		friendship: repository.NewFriendshipRepository(db, rdb),
		message:    repository.NewMessageRepository(db),
		post:       repository.NewPostRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.friendship = service.NewFriendshipService(repos.friendship, repos.user)
	s.message = service.NewMessageService(repos.message, repos.user)
	s.feed = service.NewFeedService(repos.post, repos.friendship, repos.user)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		user:       controller.NewUserController(s.user),
		friendship: controller.NewFriendshipController(s.friendship),
		message:    controller.NewMessageController(s.message),
		post:       controller.NewPostController(s.feed),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:      cfg,
		ConfigStore: config.NewStore(cfg),
		DB:          db,
		Redis:       rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(ginMode(cfg))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("socset-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers)

	return app
}

func ginMode(cfg *config.Config) string {
	switch cfg.Server.Mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
