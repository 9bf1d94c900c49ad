package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/console_go_server/config"
	"github.com/qs3c/console_go_server/internal/pkg/response"
	"github.com/qs3c/console_go_server/internal/pkg/upstream"
	"github.com/qs3c/console_go_server/internal/prefs"
	"github.com/qs3c/console_go_server/internal/service"
	"github.com/qs3c/console_go_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

type testContext struct {
	Fake      *testutil.FakeUpstream
	Store     *prefs.Store
	Notifier  *testutil.RecordingNotifier
	Clipboard *testutil.FakeClipboard
	Editor    *service.UserEditor
	Monitor   *service.JobMonitor
}

func setupTestContext(t *testing.T) *testContext {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	fake := testutil.NewFakeUpstream(t)
	store := prefs.NewStore(db)
	notifier := &testutil.RecordingNotifier{}
	clipboard := &testutil.FakeClipboard{}
	cfg := testConfig()
	client := upstream.NewClient(fake.URL(), 5*time.Second)

	return &testContext{
		Fake:      fake,
		Store:     store,
		Notifier:  notifier,
		Clipboard: clipboard,
		Editor:    service.NewUserEditor(client, store, notifier, cfg),
		Monitor:   service.NewJobMonitor(client, notifier, clipboard, cfg.Jobs.DefaultPageSize),
	}
}
