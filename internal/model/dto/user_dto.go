package dto

// GroupOption 分组下拉选项
// 选项集只是建议值，允许自由填写不在列表中的分组名
type GroupOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EditUserForm 用户编辑表单状态（返回给前端）
// QuotaInput 是按当前模式换算后的展示字符串，Quota 始终是原始额度整数
type EditUserForm struct {
	ID           int64         `json:"id,omitempty"`
	Username     string        `json:"username"`
	DisplayName  string        `json:"display_name"`
	Password     string        `json:"password"`
	GithubID     string        `json:"github_id"`
	WechatID     string        `json:"wechat_id"`
	TelegramID   string        `json:"telegram_id"`
	Email        string        `json:"email"`
	Quota        int64         `json:"quota"`
	QuotaInput   string        `json:"quota_input"`
	Group        string        `json:"group"`
	CurrencyMode bool          `json:"currency_mode"`
	Groups       []GroupOption `json:"groups,omitempty"`
}

// SubmitUserRequest 提交用户编辑请求
// Quota 以字符串接收：货币模式下是金额，原始模式下是额度整数的字符串形式
type SubmitUserRequest struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Password    string  `json:"password"`
	Group       string  `json:"group"`
	Quota       *string `json:"quota,omitempty"`
}

// AddQuotaRequest 添加额度请求，Delta 支持负数
type AddQuotaRequest struct {
	Delta string `json:"delta"`
}

// QuotaPreview 添加额度的预览，不改动编辑器中的额度
type QuotaPreview struct {
	Current  int64  `json:"current"`
	DeltaRaw int64  `json:"delta_raw"`
	New      int64  `json:"new"`
	Display  string `json:"display"`
}

// ToggleModeResponse 切换展示模式的结果
type ToggleModeResponse struct {
	CurrencyMode bool   `json:"currency_mode"`
	QuotaInput   string `json:"quota_input"`
}
