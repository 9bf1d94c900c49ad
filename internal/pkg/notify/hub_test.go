package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 启动一个接受 websocket 连接并注册到 hub 的测试服务
func setupHubServer(t *testing.T, hub *Hub) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(&Client{Conn: conn})
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d clients", n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_SuccessToast(t *testing.T) {
	hub := NewHub()
	url := setupHubServer(t, hub)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	hub.Success("用户信息更新成功！")

	event := readEvent(t, conn)
	assert.Equal(t, TypeToast, event.Type)
	assert.Equal(t, LevelSuccess, event.Level)
	assert.Equal(t, "用户信息更新成功！", event.Message)
}

func TestHub_ErrorToast(t *testing.T) {
	hub := NewHub()
	url := setupHubServer(t, hub)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	hub.Error("加载失败")

	event := readEvent(t, conn)
	assert.Equal(t, TypeToast, event.Type)
	assert.Equal(t, LevelError, event.Level)
	assert.Equal(t, "加载失败", event.Message)
}

func TestHub_WriteText(t *testing.T) {
	hub := NewHub()
	url := setupHubServer(t, hub)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	require.NoError(t, hub.WriteText("projects/p/jobs/1"))

	event := readEvent(t, conn)
	assert.Equal(t, TypeClipboard, event.Type)
	assert.Equal(t, "projects/p/jobs/1", event.Text)
}

func TestHub_WriteText_NoClient(t *testing.T) {
	hub := NewHub()
	// 没有任何页面连接时剪贴板写入视为失败
	assert.ErrorIs(t, hub.WriteText("x"), ErrNoClient)
}

func TestHub_BroadcastToAllClients(t *testing.T) {
	hub := NewHub()
	url := setupHubServer(t, hub)
	conn1 := dial(t, url)
	conn2 := dial(t, url)
	waitForClients(t, hub, 2)

	hub.Success("hello")

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		event := readEvent(t, conn)
		assert.Equal(t, "hello", event.Message)
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	client := &Client{}
	hub.Register(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestEvent_JSONShape(t *testing.T) {
	data, err := json.Marshal(&Event{Type: TypeToast, Level: LevelSuccess, Message: "ok"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "toast", decoded["type"])
	assert.Equal(t, "success", decoded["level"])
	// 剪贴板字段省略
	_, hasText := decoded["text"]
	assert.False(t, hasText)
}
