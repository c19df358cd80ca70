// @title Socset 后端 API
// @version 1.0
// @description 社交网络后端服务：好友、私信、动态与点赞。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"socset_backend/internal/app"
	"socset_backend/internal/config"
	"socset_backend/pkg/configwatcher"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)

	// 建表在 NewApp 里已经跑过，迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	// 配置热更新：换 Store 里的指针，目前只对 JWT 密钥生效
	go configwatcher.WatchConfig(*configDir+"/config.yaml", application.ReloadConfig)

	application.Run()
}
