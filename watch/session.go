package watch

import (
	"context"
	"encoding/json"
	"time"

	"quizserver/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// GenerateAndStoreSessionID は観戦セッションのIDを発行してRedisに保存し、
// クライアントに送り返します。再接続時のセッション復元に使われます。
func GenerateAndStoreSessionID(ctx context.Context, client *models.Client, rdb *redis.Client, logger *zap.Logger) error {
	sessionID := uuid.New().String()

	// セッション情報をJSON形式でエンコード
	sessionInfo := map[string]uint{
		"userID": client.UserID,
		"roomID": client.RoomID,
	}
	sessionInfoJSON, err := json.Marshal(sessionInfo)
	if err != nil {
		logger.Error("Error encoding session info", zap.Error(err))
		return err
	}

	// セッションIDとセッション情報をRedisに保存
	err = rdb.Set(ctx, "session:"+sessionID, sessionInfoJSON, 24*time.Hour).Err() // 24時間の有効期限
	if err != nil {
		logger.Error("Error storing session info in Redis", zap.Error(err))
		return err
	}

	// セッションIDをクライアントに送り返す
	response := map[string]interface{}{
		"type":      "session",
		"sessionID": sessionID,
		"userID":    client.UserID,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		logger.Error("Error marshalling session ID response", zap.Error(err))
		return err
	}
	return client.Conn.WriteMessage(websocket.TextMessage, responseJSON)
}

// RestoreSession はクライアントが提示したセッションIDをRedisで検証し、
// 有効であればクライアント情報を復元します。古いセッションは削除されます。
func RestoreSession(ctx context.Context, client *models.Client, rdb *redis.Client, sessionID string, logger *zap.Logger) bool {
	if sessionID == "" {
		return false
	}

	sessionInfoJSON, err := rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		logger.Error("Failed to retrieve session info", zap.Error(err))
		return false
	}

	var sessionInfo map[string]uint
	if err := json.Unmarshal([]byte(sessionInfoJSON), &sessionInfo); err != nil {
		logger.Error("Failed to decode session info", zap.Error(err))
		return false
	}

	// セッション情報に基づいてクライアント情報を復元
	client.UserID = sessionInfo["userID"]
	client.RoomID = sessionInfo["roomID"]

	// 旧セッションの削除
	rdb.Del(ctx, "session:"+sessionID)
	return true
}
