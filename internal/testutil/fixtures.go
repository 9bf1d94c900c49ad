package testutil

import (
	"fmt"
	"sync"

	"github.com/qs3c/console_go_server/internal/model"
)

// TestUser 构造测试用户记录
func TestUser(opts ...func(*model.User)) model.User {
	user := model.User{
		ID:          1,
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "should-never-echo",
		Email:       "alice@example.com",
		Quota:       1000,
		Group:       "default",
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithQuota 设置额度
func WithQuota(quota int64) func(*model.User) {
	return func(u *model.User) {
		u.Quota = quota
	}
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// TestJobs 构造 n 条批处理任务记录
func TestJobs(n int) []model.BatchJob {
	jobs := make([]model.BatchJob, 0, n)
	for i := 1; i <= n; i++ {
		jobs = append(jobs, model.BatchJob{
			ID:          int64(i),
			Name:        fmt.Sprintf("projects/p/locations/l/batchPredictionJobs/%d", i),
			DisplayName: fmt.Sprintf("job-%d", i),
			State:       model.JobStateSucceeded,
			ModelPath:   "publishers/google/models/gemini-2.5-pro",
			CreateTime:  "2025-06-01T08:00:00Z",
		})
	}
	return jobs
}

// RecordingNotifier 记录提示消息的 Notifier 测试替身
type RecordingNotifier struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (n *RecordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Successes = append(n.Successes, message)
}

func (n *RecordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, message)
}

// FakeClipboard 记录写入文本的剪贴板测试替身
type FakeClipboard struct {
	mu    sync.Mutex
	Texts []string
	Err   error // 设置后 WriteText 返回该错误
}

func (c *FakeClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Texts = append(c.Texts, text)
	return nil
}
