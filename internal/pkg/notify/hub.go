// Package notify 负责把提示消息和剪贴板写入事件推送到已连接的控制台页面。
package notify

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// 事件类型
const (
	TypeToast     = "toast"
	TypeClipboard = "clipboard_write"
)

// 提示级别
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Event 推送给控制台页面的事件
type Event struct {
	Type    string `json:"type"`
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Notifier 操作员提示收集器
type Notifier interface {
	Success(message string)
	Error(message string)
}

// ClipboardWriter 剪贴板写入原语
// 实际的写入发生在浏览器端，这里只负责把文本送达页面
type ClipboardWriter interface {
	WriteText(text string) error
}

var ErrNoClient = errors.New("没有已连接的控制台页面")

// Hub 管理所有控制台页面连接并向它们广播事件
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Conn *websocket.Conn
	mu   sync.Mutex // 写锁，防止并发写入
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = struct{}{}
	log.Printf("Console page connected, total: %d", len(h.clients))
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, client)
	log.Printf("Console page disconnected, total: %d", len(h.clients))
}

// Broadcast 向所有连接广播事件，单个连接的写失败不影响其余连接
func (h *Hub) Broadcast(event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Failed to write to console page: %v", err)
		}
		c.mu.Unlock()
	}
	return nil
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Success 推送成功提示
func (h *Hub) Success(message string) {
	_ = h.Broadcast(&Event{Type: TypeToast, Level: LevelSuccess, Message: message})
}

// Error 推送错误提示
func (h *Hub) Error(message string) {
	_ = h.Broadcast(&Event{Type: TypeToast, Level: LevelError, Message: message})
}

// WriteText 把文本作为剪贴板事件推送给页面，由浏览器完成实际写入
// 没有任何页面连接时视为写入失败
func (h *Hub) WriteText(text string) error {
	if h.ClientCount() == 0 {
		return ErrNoClient
	}
	return h.Broadcast(&Event{Type: TypeClipboard, Text: text})
}
