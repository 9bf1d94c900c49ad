package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/qs3c/console_go_server/internal/model"
)

// FakeUpstream 远端账户/任务服务的测试替身
// 所有响应都包在 {success, message, data} 信封里；设置 FailMessage 后
// 全部接口返回 success=false，设置 StatusCode 后返回对应 HTTP 状态
type FakeUpstream struct {
	Server *httptest.Server

	mu          sync.Mutex
	User        model.User
	Groups      []string
	Jobs        []model.BatchJob
	FailMessage string
	StatusCode  int

	LastUpdate *model.User // 捕获最近一次 PUT 的请求体
	LastPath   string

	hold        chan struct{}
	holdEntered chan struct{}
}

// NewFakeUpstream 启动测试替身服务，随测试自动关闭
func NewFakeUpstream(t *testing.T) *FakeUpstream {
	t.Helper()

	f := &FakeUpstream{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// URL 替身服务地址
func (f *FakeUpstream) URL() string {
	return f.Server.URL
}

// SetFailure 让所有接口返回 success=false
func (f *FakeUpstream) SetFailure(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailMessage = message
}

// SetStatus 让所有接口返回指定 HTTP 状态码
func (f *FakeUpstream) SetStatus(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StatusCode = code
}

// HoldRequests 让后续请求在到达后挂起，用于构造慢响应
// entered 在每个被挂起的请求到达时收到一次信号，release 放行全部
func (f *FakeUpstream) HoldRequests() (entered <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hold = make(chan struct{})
	f.holdEntered = make(chan struct{}, 16)
	hold := f.hold
	return f.holdEntered, func() { close(hold) }
}

func (f *FakeUpstream) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	hold, entered := f.hold, f.holdEntered
	f.mu.Unlock()
	if hold != nil {
		entered <- struct{}{}
		<-hold
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.LastPath = r.URL.Path

	if f.StatusCode != 0 && f.StatusCode != http.StatusOK {
		w.WriteHeader(f.StatusCode)
		return
	}
	if f.FailMessage != "" {
		writeEnvelope(w, false, f.FailMessage, nil)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/user/self":
		writeEnvelope(w, true, "", f.User)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/user/"):
		writeEnvelope(w, true, "", f.User)
	case r.Method == http.MethodPut && (r.URL.Path == "/api/user/" || r.URL.Path == "/api/user/self"):
		var user model.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			writeEnvelope(w, false, "请求体解析失败", nil)
			return
		}
		f.LastUpdate = &user
		writeEnvelope(w, true, "", nil)
	case r.Method == http.MethodGet && r.URL.Path == "/api/group/":
		writeEnvelope(w, true, "", f.Groups)
	case r.Method == http.MethodGet && r.URL.Path == "/api/batch_job/list":
		writeEnvelope(w, true, "", f.Jobs)
	default:
		writeEnvelope(w, false, "未知接口", nil)
	}
}

func writeEnvelope(w http.ResponseWriter, success bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": success,
		"message": message,
		"data":    data,
	})
}
