package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/qs3c/console_go_server/internal/pkg/notify"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 跨域控制交给 CORS 中间件
		return true
	},
}

type WebSocketHandler struct {
	hub *notify.Hub
}

func NewWebSocketHandler(hub *notify.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Handle 控制台页面的事件流连接
// GET /api/console/ws
// 提示消息与剪贴板写入事件通过这条连接推送
func (h *WebSocketHandler) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}

	client := &notify.Client{Conn: conn}
	h.hub.Register(client)

	// 只为感知断连而读，页面不会上行任何消息
	go func() {
		defer func() {
			h.hub.Unregister(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
