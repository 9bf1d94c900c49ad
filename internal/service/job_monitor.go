package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/qs3c/console_go_server/internal/model"
	"github.com/qs3c/console_go_server/internal/model/dto"
	"github.com/qs3c/console_go_server/internal/pkg/notify"
	"github.com/qs3c/console_go_server/internal/pkg/upstream"
)

// ErrJobNotFound 指定 ID 的任务不在当前列表中
var ErrJobNotFound = errors.New("任务不存在")

// TimePlaceholder 缺失时间的占位符
const TimePlaceholder = "-"

// JobMonitor 批处理任务监控
// 任务全量拉取后在内存中分页，total 永远等于全量列表长度。
// 任务由外部服务推进，这里只读不写。
type JobMonitor struct {
	api       *upstream.Client
	notifier  notify.Notifier
	clipboard notify.ClipboardWriter

	mu       sync.Mutex
	jobs     []model.BatchJob
	page     int
	pageSize int
	loading  bool
}

func NewJobMonitor(api *upstream.Client, notifier notify.Notifier, clipboard notify.ClipboardWriter, defaultPageSize int) *JobMonitor {
	return &JobMonitor{
		api:       api,
		notifier:  notifier,
		clipboard: clipboard,
		page:      1,
		pageSize:  defaultPageSize,
	}
}

// Load 全量拉取任务列表并整体替换
// 失败或空响应一律归一化为空列表，通知操作员但从不阻塞渲染
func (m *JobMonitor) Load(ctx context.Context) error {
	m.mu.Lock()
	if m.loading {
		m.mu.Unlock()
		return ErrBusy
	}
	m.loading = true
	m.mu.Unlock()

	jobs, err := m.api.ListBatchJobs(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false

	if err != nil {
		m.notifier.Error(err.Error())
		m.jobs = []model.BatchJob{}
		return nil
	}
	if jobs == nil {
		jobs = []model.BatchJob{}
	}
	m.jobs = jobs
	return nil
}

// Page 返回指定页的任务行
// 纯客户端切片：[(page-1)·size, page·size) 截取到列表边界；
// 页大小变化时当前页重置为 1
func (m *JobMonitor) Page(page, pageSize int) dto.JobPage {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pageSize > 0 && pageSize != m.pageSize {
		m.pageSize = pageSize
		page = 1
	}
	if page < 1 {
		page = m.page
	}
	m.page = page

	total := len(m.jobs)
	start := (page - 1) * m.pageSize
	end := page * m.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]dto.JobRow, 0, end-start)
	for _, job := range m.jobs[start:end] {
		items = append(items, buildJobRow(&job))
	}

	return dto.JobPage{
		Total:    total,
		Page:     page,
		PageSize: m.pageSize,
		Items:    items,
	}
}

// CopyName 把任务的内部 name 推送给剪贴板，成败都通知操作员
// 对展示数据没有任何影响
func (m *JobMonitor) CopyName(id int64) error {
	m.mu.Lock()
	var name string
	found := false
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			name = m.jobs[i].Name
			found = true
			break
		}
	}
	m.mu.Unlock()

	if !found {
		m.notifier.Error(ErrJobNotFound.Error())
		return ErrJobNotFound
	}

	if err := m.clipboard.WriteText(name); err != nil {
		m.notifier.Error("无法复制到剪贴板")
		return err
	}
	m.notifier.Success("已复制到剪贴板！")
	return nil
}

func buildJobRow(job *model.BatchJob) dto.JobRow {
	label, color := StateLabel(job.State)
	return dto.JobRow{
		ID:          job.ID,
		DisplayName: job.DisplayName,
		State:       string(job.State),
		StateLabel:  label,
		StateColor:  color,
		ModelPath:   job.ModelPath,
		CreateTime:  FormatTime(job.CreateTime),
		StartTime:   FormatTime(job.StartTime),
		EndTime:     FormatTime(job.EndTime),
		Error:       job.Error,
	}
}

// StateLabel 任务状态到展示标签与颜色的映射
// 对五个已知状态穷尽且无副作用；未知值回显原始值，空值给固定占位
func StateLabel(state model.JobState) (label, color string) {
	switch state {
	case model.JobStatePending:
		return "待处理", "blue"
	case model.JobStateRunning:
		return "运行中", "green"
	case model.JobStateSucceeded:
		return "成功", "green"
	case model.JobStateFailed:
		return "失败", "red"
	case model.JobStateCancelled:
		return "已取消", "grey"
	default:
		if state != "" {
			return string(state), "black"
		}
		return "未知状态", "black"
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// FormatTime 把上游下发的时间字符串格式化为本地化展示
// 缺失值渲染为占位符，解析失败时原样回显，永不报错
func FormatTime(value string) string {
	if value == "" {
		return TimePlaceholder
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006/01/02 15:04:05")
		}
	}
	return value
}
