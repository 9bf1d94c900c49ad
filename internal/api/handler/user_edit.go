package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/console_go_server/internal/model/dto"
	"github.com/qs3c/console_go_server/internal/pkg/response"
	"github.com/qs3c/console_go_server/internal/service"
)

type UserEditHandler struct {
	editor *service.UserEditor
}

func NewUserEditHandler(editor *service.UserEditor) *UserEditHandler {
	return &UserEditHandler{editor: editor}
}

// Open 打开用户编辑器并返回表单状态
// GET /api/console/user/edit?id=
// 不带 id 时编辑当前用户自己
func (h *UserEditHandler) Open(c *gin.Context) {
	var id int64
	if raw := c.Query("id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, "无效的用户 ID")
			return
		}
		id = parsed
	}

	if err := h.editor.Open(c.Request.Context(), id); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, h.editor.Form())
}

// Submit 落入字段编辑并提交
// PUT /api/console/user/edit
func (h *UserEditHandler) Submit(c *gin.Context) {
	var req dto.SubmitUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err.Error())
		return
	}

	h.editor.ApplyEdits(&req)
	if err := h.editor.Submit(c.Request.Context()); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.SuccessWithMessage(c, "用户信息更新成功！", nil)
}

// ToggleMode 切换额度展示模式
// POST /api/console/user/quota/mode
func (h *UserEditHandler) ToggleMode(c *gin.Context) {
	currencyMode, input := h.editor.ToggleMode()
	response.Success(c, dto.ToggleModeResponse{
		CurrencyMode: currencyMode,
		QuotaInput:   input,
	})
}

// PreviewQuota 预览添加额度后的新额度，不改动表单
// POST /api/console/user/quota/preview
func (h *UserEditHandler) PreviewQuota(c *gin.Context) {
	var req dto.AddQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, h.editor.PreviewAdd(req.Delta))
}

// AddQuota 确认添加额度
// POST /api/console/user/quota/add
func (h *UserEditHandler) AddQuota(c *gin.Context) {
	var req dto.AddQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err.Error())
		return
	}

	h.editor.OpenAddQuota()
	h.editor.SetDelta(req.Delta)
	response.Success(c, h.editor.ConfirmAdd())
}

// Groups 返回过滤后的分组选项
// GET /api/console/user/groups
func (h *UserEditHandler) Groups(c *gin.Context) {
	if err := h.editor.FetchGroups(c.Request.Context()); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, h.editor.Form().Groups)
}
