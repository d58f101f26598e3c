package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Shiven-Sharmaa/AmongUs/internal/logging"
)

type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[sessionID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[sessionID] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[sessionID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, sessionID)
	}
}

func (h *wsHub) Send(conn *websocket.Conn, messages []wsHTMLMessage) {
	if len(messages) == 0 {
		return
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *wsHub) Broadcast(sessionID string, messages []wsHTMLMessage) {
	if len(messages) == 0 {
		return
	}
	h.mu.Lock()
	group := h.groups[sessionID]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(messages)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(sessionID, conn)
		}
	}
}

func (s *Server) handleWebsocket(c *gin.Context) {
	sessionID := c.Param("id")
	session, ok := s.store.Get(sessionID)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	logging.Log.Infof("ws connected session_id=%s remote=%s", sessionID, c.Request.RemoteAddr)
	s.ws.Add(sessionID, conn)

	session.mu.Lock()
	messages := renderFullMessages(session)
	session.mu.Unlock()
	s.ws.Send(conn, messages)

	go s.readWS(sessionID, conn)
}

// readWS drains the connection until it dies; viewers never send
// anything meaningful over the socket.
func (s *Server) readWS(sessionID string, conn *websocket.Conn) {
	defer s.ws.Remove(sessionID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			logging.Log.Infof("ws disconnected session_id=%s error=%v", sessionID, err)
			return
		}
	}
}
