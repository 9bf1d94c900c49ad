package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/qs3c/console_go_server/config"
	"github.com/qs3c/console_go_server/internal/api"
	"github.com/qs3c/console_go_server/internal/api/handler"
	"github.com/qs3c/console_go_server/internal/database"
	"github.com/qs3c/console_go_server/internal/pkg/notify"
	"github.com/qs3c/console_go_server/internal/pkg/upstream"
	"github.com/qs3c/console_go_server/internal/prefs"
	"github.com/qs3c/console_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化偏好存储数据库
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open preference database: %v", err)
	}
	log.Println("Preference database ready")
	store := prefs.NewStore(db)

	// 初始化通知 Hub
	hub := notify.NewHub()

	// 通知收集器：启用 Redis 时跨副本广播，否则只在本进程内推送
	var notifier notify.Notifier = hub
	if cfg.Redis.Enabled {
		rdb, err := database.NewRedis(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect redis: %v", err)
		}
		log.Println("Redis connected")

		notifier = notify.NewFanoutNotifier(hub, notify.NewPublisher(rdb))

		subscriber := notify.NewSubscriber(rdb)
		go func() {
			if err := subscriber.Subscribe(context.Background(), func(event *notify.Event) {
				_ = hub.Broadcast(event)
			}); err != nil && err != context.Canceled {
				log.Printf("Console event subscription stopped: %v", err)
			}
		}()
	}

	// 初始化远端服务客户端
	client := upstream.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)

	// 初始化核心组件
	editor := service.NewUserEditor(client, store, notifier, cfg)
	monitor := service.NewJobMonitor(client, notifier, hub, cfg.Jobs.DefaultPageSize)

	// 初始化 Handler 与路由
	userEditHandler := handler.NewUserEditHandler(editor)
	batchJobHandler := handler.NewBatchJobHandler(monitor)
	websocketHandler := handler.NewWebSocketHandler(hub)

	router := api.NewRouter(userEditHandler, batchJobHandler, websocketHandler, cfg)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Console server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
