package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/qs3c/console_go_server/config"
	"github.com/qs3c/console_go_server/internal/model"
	"github.com/qs3c/console_go_server/internal/model/dto"
	"github.com/qs3c/console_go_server/internal/pkg/notify"
	"github.com/qs3c/console_go_server/internal/pkg/upstream"
	"github.com/qs3c/console_go_server/internal/prefs"
	"github.com/qs3c/console_go_server/internal/quota"
)

// ErrBusy 同一动作的上一次触发还在进行中
var ErrBusy = errors.New("上一个操作尚未完成")

// UserEditor 用户编辑器
// 持有表单状态并与远端账户服务交互。额度的唯一事实来源是 form.Quota
// 整数；货币模式只是展示投影。网络调用期间不持锁，后到达的加载响应会
// 无条件覆盖进行中的编辑（与原有行为保持一致）。
type UserEditor struct {
	api      *upstream.Client
	store    *prefs.Store
	notifier notify.Notifier
	cfg      *config.Config

	refresh func() // 提交成功后触发的外部刷新回调
	onClose func() // 提交成功后关闭编辑器的回调

	mu           sync.Mutex
	userID       int64 // 0 表示编辑自己
	form         model.User
	quotaInput   string // 原始模式下暂存的输入串，提交时才整数化
	currencyMode bool
	groups       []dto.GroupOption

	// 添加额度弹窗
	modalOpen  bool
	deltaInput string

	// 动作级忙碌标志，拒绝同一动作的重入触发
	loading        bool
	fetchingGroups bool
	submitting     bool
}

func NewUserEditor(api *upstream.Client, store *prefs.Store, notifier notify.Notifier, cfg *config.Config) *UserEditor {
	return &UserEditor{
		api:      api,
		store:    store,
		notifier: notifier,
		cfg:      cfg,
	}
}

// SetCallbacks 设置提交成功后的刷新与关闭回调
func (e *UserEditor) SetCallbacks(refresh, onClose func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refresh = refresh
	e.onClose = onClose
}

// Open 打开编辑器：id 为 0 时编辑自己，否则编辑指定用户
// 展示模式从偏好存储恢复，默认原始模式
func (e *UserEditor) Open(ctx context.Context, id int64) error {
	e.mu.Lock()
	e.userID = id
	e.currencyMode = e.store.DisplayInCurrency()
	e.groups = nil
	e.modalOpen = false
	e.mu.Unlock()

	if err := e.Load(ctx); err != nil {
		return err
	}
	if id != 0 {
		// 编辑他人时才拉取分组
		if err := e.FetchGroups(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Load 加载用户记录并整体替换表单状态
// 失败时通知操作员，原有表单保持不动；密码字段加载后总是置空
func (e *UserEditor) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.loading {
		e.mu.Unlock()
		return ErrBusy
	}
	e.loading = true
	id := e.userID
	e.mu.Unlock()

	var user *model.User
	var err error
	if id != 0 {
		user, err = e.api.GetUser(ctx, id)
	} else {
		user, err = e.api.GetSelf(ctx)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false

	if err != nil {
		e.notifier.Error(err.Error())
		return err
	}

	user.Password = ""
	e.form = *user
	e.quotaInput = quota.Display(user.Quota, e.currencyMode, e.cfg.Quota.PerUnit)
	return nil
}

// FetchGroups 拉取分组列表并应用可见性过滤
// 非管理员只能看到包含自己用户名的分组；选项集只是建议值
func (e *UserEditor) FetchGroups(ctx context.Context) error {
	e.mu.Lock()
	if e.fetchingGroups {
		e.mu.Unlock()
		return ErrBusy
	}
	e.fetchingGroups = true
	e.mu.Unlock()

	groups, err := e.api.GetGroups(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.fetchingGroups = false

	if err != nil {
		e.notifier.Error(err.Error())
		return err
	}

	visible := FilterGroups(groups, e.store.CurrentUser(), e.cfg.Quota.AdminRole)
	options := make([]dto.GroupOption, 0, len(visible))
	for _, g := range visible {
		options = append(options, dto.GroupOption{Label: g, Value: g})
	}
	e.groups = options
	return nil
}

// FilterGroups 分组可见性过滤
// 角色低于 adminRole 的调用者只能看到包含自己用户名的分组；无缓存用户
// 时不过滤（这是客户端可见性过滤，不是安全边界，服务端会重新校验）
func FilterGroups(groups []string, current *model.CurrentUser, adminRole int) []string {
	if current == nil || current.Role >= adminRole {
		return groups
	}
	filtered := make([]string, 0, len(groups))
	for _, g := range groups {
		if strings.Contains(g, current.Username) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// ToggleMode 切换原始/货币展示模式
// 切换前先把暂存输入落为生效额度（清空视同 0），再按新模式重渲染输入框；
// 新模式持久化到偏好存储
func (e *UserEditor) ToggleMode() (bool, string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// 原始模式下暂存的字符串先落回整数，避免切换后语义漂移
	if !e.currencyMode {
		e.form.Quota = quota.CoerceRaw(e.quotaInput)
	}
	e.currencyMode = !e.currencyMode
	_ = e.store.SetDisplayInCurrency(e.currencyMode)
	e.quotaInput = quota.Display(e.form.Quota, e.currencyMode, e.cfg.Quota.PerUnit)
	return e.currencyMode, e.quotaInput
}

// SetField 表单字段编辑，除额度外的字段原样存储
func (e *UserEditor) SetField(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch name {
	case "username":
		e.form.Username = value
	case "display_name":
		e.form.DisplayName = value
	case "password":
		e.form.Password = value
	case "group":
		e.form.Group = value
	case "email":
		e.form.Email = value
	}
}

// SetQuotaInput 额度输入框编辑
// 货币模式：立即换算成原始额度存储；原始模式：字符串暂存，提交时整数化
func (e *UserEditor) SetQuotaInput(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.currencyMode {
		e.form.Quota = quota.ParseInput(value, true, e.cfg.Quota.PerUnit)
		e.quotaInput = quota.Display(e.form.Quota, true, e.cfg.Quota.PerUnit)
	} else {
		e.quotaInput = value
	}
}

// OpenAddQuota 打开添加额度弹窗，增量初始化为 "0"
func (e *UserEditor) OpenAddQuota() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deltaInput = "0"
	e.modalOpen = true
}

// SetDelta 编辑弹窗中的增量
func (e *UserEditor) SetDelta(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deltaInput = value
}

// PreviewAdd 预览添加额度后的新额度，不改动编辑器状态
func (e *UserEditor) PreviewAdd(delta string) dto.QuotaPreview {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.previewLocked(delta)
}

func (e *UserEditor) previewLocked(delta string) dto.QuotaPreview {
	current := e.resolvedQuotaLocked()
	deltaRaw := quota.ParseInput(delta, e.currencyMode, e.cfg.Quota.PerUnit)
	newQuota := current + deltaRaw
	return dto.QuotaPreview{
		Current:  current,
		DeltaRaw: deltaRaw,
		New:      newQuota,
		Display:  quota.Display(newQuota, e.currencyMode, e.cfg.Quota.PerUnit),
	}
}

// ConfirmAdd 确认添加额度并关闭弹窗
// 增量可以为负，这里不设下限，负额度交由服务端校验
func (e *UserEditor) ConfirmAdd() dto.QuotaPreview {
	e.mu.Lock()
	defer e.mu.Unlock()

	preview := e.previewLocked(e.deltaInput)
	e.form.Quota = preview.New
	e.quotaInput = quota.Display(preview.New, e.currencyMode, e.cfg.Quota.PerUnit)
	e.modalOpen = false
	e.deltaInput = ""
	return preview
}

// CancelAdd 放弃增量并关闭弹窗，无任何副作用
func (e *UserEditor) CancelAdd() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modalOpen = false
	e.deltaInput = ""
}

// Submit 提交编辑
// 编辑他人时携带 id 走 PUT /api/user/，编辑自己走 PUT /api/user/self；
// 成功后通知、触发刷新回调并关闭；失败时保留当前未保存的编辑
func (e *UserEditor) Submit(ctx context.Context) error {
	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return ErrBusy
	}
	e.submitting = true

	payload := e.form
	payload.Quota = e.resolvedQuotaLocked()
	id := e.userID
	refresh := e.refresh
	onClose := e.onClose
	e.mu.Unlock()

	var err error
	if id != 0 {
		payload.ID = id
		err = e.api.UpdateUser(ctx, &payload)
	} else {
		payload.ID = 0
		err = e.api.UpdateSelf(ctx, &payload)
	}

	e.mu.Lock()
	e.submitting = false
	e.mu.Unlock()

	if err != nil {
		e.notifier.Error(err.Error())
		return err
	}

	e.notifier.Success("用户信息更新成功！")
	if refresh != nil {
		refresh()
	}
	if onClose != nil {
		onClose()
	}
	return nil
}

// resolvedQuotaLocked 返回当前生效的原始额度整数
// 原始模式下以暂存字符串为准，清空输入视同 0
func (e *UserEditor) resolvedQuotaLocked() int64 {
	if !e.currencyMode {
		return quota.CoerceRaw(e.quotaInput)
	}
	return e.form.Quota
}

// Form 返回表单状态快照
func (e *UserEditor) Form() dto.EditUserForm {
	e.mu.Lock()
	defer e.mu.Unlock()

	return dto.EditUserForm{
		ID:           e.userID,
		Username:     e.form.Username,
		DisplayName:  e.form.DisplayName,
		Password:     e.form.Password,
		GithubID:     e.form.GithubID,
		WechatID:     e.form.WechatID,
		TelegramID:   e.form.TelegramID,
		Email:        e.form.Email,
		Quota:        e.form.Quota,
		QuotaInput:   e.quotaInput,
		Group:        e.form.Group,
		CurrencyMode: e.currencyMode,
		Groups:       e.groups,
	}
}

// ApplyEdits 一次性落入一批字段编辑（HTTP 提交入口使用）
func (e *UserEditor) ApplyEdits(req *dto.SubmitUserRequest) {
	e.SetField("username", req.Username)
	e.SetField("display_name", req.DisplayName)
	e.SetField("password", req.Password)
	e.SetField("group", req.Group)
	if req.Quota != nil {
		e.SetQuotaInput(*req.Quota)
	}
}
