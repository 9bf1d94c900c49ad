package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/console_go_server/config"
	"github.com/qs3c/console_go_server/internal/api/handler"
	"github.com/qs3c/console_go_server/internal/api/middleware"
)

type Router struct {
	userEditHandler  *handler.UserEditHandler
	batchJobHandler  *handler.BatchJobHandler
	websocketHandler *handler.WebSocketHandler
	cfg              *config.Config
}

func NewRouter(
	userEditHandler *handler.UserEditHandler,
	batchJobHandler *handler.BatchJobHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		userEditHandler:  userEditHandler,
		batchJobHandler:  batchJobHandler,
		websocketHandler: websocketHandler,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/console")
	{
		// 事件流
		api.GET("/ws", r.websocketHandler.Handle)

		// 用户编辑器
		user := api.Group("/user")
		{
			user.GET("/edit", r.userEditHandler.Open)
			user.PUT("/edit", r.userEditHandler.Submit)
			user.GET("/groups", r.userEditHandler.Groups)
			user.POST("/quota/mode", r.userEditHandler.ToggleMode)
			user.POST("/quota/preview", r.userEditHandler.PreviewQuota)
			user.POST("/quota/add", r.userEditHandler.AddQuota)
		}

		// 批处理任务监控
		jobs := api.Group("/jobs")
		{
			jobs.GET("", r.batchJobHandler.List)
			jobs.POST("/refresh", r.batchJobHandler.Refresh)
			jobs.POST("/:id/copy_name", r.batchJobHandler.CopyName)
		}
	}

	return engine
}
