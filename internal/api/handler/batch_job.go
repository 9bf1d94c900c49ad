package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/console_go_server/internal/pkg/response"
	"github.com/qs3c/console_go_server/internal/service"
)

type BatchJobHandler struct {
	monitor *service.JobMonitor
}

func NewBatchJobHandler(monitor *service.JobMonitor) *BatchJobHandler {
	return &BatchJobHandler{monitor: monitor}
}

// Refresh 重新拉取全量任务列表
// POST /api/console/jobs/refresh
// 拉取失败会归一化为空列表，因此这里总是返回成功的分页数据
func (h *BatchJobHandler) Refresh(c *gin.Context) {
	if err := h.monitor.Load(c.Request.Context()); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, h.monitor.Page(1, 0))
}

// List 返回当前页的任务行，纯内存切片
// GET /api/console/jobs?page=&page_size=
func (h *BatchJobHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	response.Success(c, h.monitor.Page(page, pageSize))
}

// CopyName 把任务的内部名称推送到剪贴板
// POST /api/console/jobs/:id/copy_name
func (h *BatchJobHandler) CopyName(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, "无效的任务 ID")
		return
	}

	if err := h.monitor.CopyName(id); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.SuccessWithMessage(c, "已复制到剪贴板！", nil)
}
