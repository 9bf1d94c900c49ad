package model

// User 网关平台用户记录
// Quota 始终以非负整数的原始额度单位存储与传输，货币金额只是展示层的换算
type User struct {
	ID          int64  `json:"id,omitempty"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	// Password 只写不读：加载时永远置空，仅在提交时携带新密码
	Password   string `json:"password,omitempty"`
	GithubID   string `json:"github_id"`
	WechatID   string `json:"wechat_id"`
	TelegramID string `json:"telegram_id"`
	Email      string `json:"email"`
	Quota      int64  `json:"quota"`
	Group      string `json:"group"`
}

// CurrentUser 偏好存储中缓存的当前登录用户
// 只用于分组可见性过滤，不是鉴权依据（服务端会重新校验）
type CurrentUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     int    `json:"role"`
}
