package watch

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"quizserver/middlewares"
	"quizserver/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HandleWatch はルーム観戦用のWebSocket接続を処理します。
// 接続後はRedisのルーム更新通知を受けてHubが最新状態を配信します。
func HandleWatch(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger, hub *Hub, upgrader websocket.Upgrader) {
	roomIDUint, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		logger.Error("Invalid roomID format", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "不正なルームIDです"})
		return
	}
	roomID := uint(roomIDUint)

	// JWTトークンからユーザーIDを取得
	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		logger.Error("Failed to get user ID from token", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	// WebSocket接続へのアップグレードと確立
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Error upgrading WebSocket", zap.Error(err))
		return
	}

	client := &models.Client{
		Conn:   conn,
		UserID: userID,
		RoomID: roomID,
	}

	// セッションIDの検証と復元。提示がなければ新規発行
	ctx := c.Request.Context()
	sessionID := c.GetHeader("SessionID")
	if sessionID != "" {
		RestoreSession(ctx, client, rdb, sessionID, logger)
	}
	if err := GenerateAndStoreSessionID(ctx, client, rdb, logger); err != nil {
		logger.Error("Failed to issue watch session", zap.Error(err))
	}

	hub.add(client)
	logger.Info("New watch client added", zap.Uint("UserID", client.UserID), zap.Uint("RoomID", client.RoomID))

	// 接続直後に現在の状態を送信
	hub.BroadcastRoomState(db, logger, roomID)

	go maintainConnection(context.Background(), client, hub, logger)
}

// maintainConnection はPing/Pongで接続を維持し、切断時にクライアントを
// Hubから取り除きます。
func maintainConnection(ctx context.Context, client *models.Client, hub *Hub, logger *zap.Logger) {
	defer func() {
		client.Conn.Close()
		hub.remove(client)
		logger.Info("Watch client removed", zap.Uint("UserID", client.UserID))
	}()

	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second)) // 読み取りデッドラインを更新
		return nil
	})

	// 受信ループ。観戦者からのメッセージは読み捨てるが、切断検知のために必要
	go func() {
		for {
			if _, _, err := client.Conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingPeriod := 10 * time.Second // 10秒ごとにPingを送信
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Error("Error sending ping or connection is closed", zap.Error(err))
				return
			}
		}
	}
}
