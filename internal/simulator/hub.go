package simulator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "teer_sim_ws_connections",
		Help: "Connected round-update WebSocket clients",
	})
	wsMessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "teer_sim_ws_messages_sent_total",
		Help: "Round-update WS messages sent",
	})
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RoundUpdate is broadcast periodically so clients can show live countdowns
// without polling the catalog.
type RoundUpdate struct {
	HouseID         int       `json:"house_id"`
	RoundType       string    `json:"round_type"`
	BettingClosesAt time.Time `json:"betting_closes_at"`
	ClosesInSeconds int       `json:"closes_in_seconds"`
	TsUnixMs        int64     `json:"ts_unix_ms"`
}

type clientConn struct {
	id   string
	conn *websocket.Conn
}

// Hub manages round-update WebSocket clients and broadcasts to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*clientConn
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*clientConn),
		log:     log,
	}
}

func (h *Hub) add(c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	wsConnections.Inc()
	h.log.Info("ws client connected", zap.String("client_id", c.id))
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		delete(h.clients, id)
		wsConnections.Dec()
		h.log.Info("ws client disconnected", zap.String("client_id", id))
	}
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	msg, _ := json.Marshal(v)
	for id, c := range h.clients {
		c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Warn("ws write failed", zap.String("client_id", id), zap.Error(err))
			_ = c.conn.Close()
		} else {
			wsMessagesSent.Inc()
		}
	}
}

// Handler upgrades the connection and keeps it registered until it drops.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	id := fmt.Sprintf("%d", time.Now().UnixNano())
	c := &clientConn{id: id, conn: conn}
	h.add(c)

	go func() {
		defer func() {
			h.remove(id)
			_ = conn.Close()
		}()
		_ = conn.SetReadDeadline(time.Time{})
		for {
			// read and discard client messages to keep the socket clean
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func init() {
	prometheus.MustRegister(wsConnections, wsMessagesSent)
}
