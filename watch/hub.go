package watch

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"quizserver/game"
	"quizserver/models"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Hub はルームごとの観戦クライアントを管理します。
type Hub struct {
	mu    sync.Mutex
	rooms map[uint]map[*models.Client]bool
}

// NewHub は空のHubを作成します。
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*models.Client]bool),
	}
}

func (h *Hub) add(client *models.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.rooms[client.RoomID]
	if !exists {
		clients = make(map[*models.Client]bool)
		h.rooms[client.RoomID] = clients
	}
	clients[client] = true
}

func (h *Hub) remove(client *models.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.rooms[client.RoomID]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, client.RoomID)
		}
	}
}

// clientsOf は指定ルームのクライアント一覧のスナップショットを返します。
func (h *Hub) clientsOf(roomID uint) []*models.Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*models.Client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		clients = append(clients, c)
	}
	return clients
}

// BroadcastRoomState はルームの最新状態を観戦者全員に送信します。
func (h *Hub) BroadcastRoomState(db *gorm.DB, logger *zap.Logger, roomID uint) {
	clients := h.clientsOf(roomID)
	if len(clients) == 0 {
		return
	}

	state, err := game.GetRoomState(db, roomID)
	if err != nil {
		logger.Error("Failed to fetch room state for broadcast", zap.Uint("roomID", roomID), zap.Error(err))
		return
	}

	message := map[string]interface{}{
		"type": "roomState",
		"room": state,
	}
	messageJSON, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal room state", zap.Error(err))
		return
	}

	for _, client := range clients {
		if err := client.Conn.WriteMessage(websocket.TextMessage, messageJSON); err != nil {
			logger.Error("Failed to broadcast room state", zap.Uint("UserID", client.UserID), zap.Error(err))
		}
	}
}

// Run はRedisのルーム更新チャンネルを購読し、更新があったルームの観戦者に
// 最新状態を配信し続けます。mainからゴルーチンとして起動されます。
func (h *Hub) Run(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	pubsub := rdb.PSubscribe(ctx, "room:*:updates")
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			roomID, err := roomIDFromChannel(msg.Channel)
			if err != nil {
				logger.Error("Invalid room update channel", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			h.BroadcastRoomState(db, logger, roomID)
		}
	}
}

// roomIDFromChannel は"room:<id>:updates"形式のチャンネル名からルームIDを取り出します。
func roomIDFromChannel(channel string) (uint, error) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(channel, "room:"), ":updates")
	id, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
