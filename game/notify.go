package game

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RoomUpdateChannel はルームの状態変化が配信されるPub/Subチャンネル名を返します。
func RoomUpdateChannel(roomID uint) string {
	return fmt.Sprintf("room:%d:updates", roomID)
}

// NotifyRoomUpdate はルームの状態変化をRedis経由で通知します。
// 通知はベストエフォートで、失敗してもゲームの状態更新はロールバックされません。
func NotifyRoomUpdate(ctx context.Context, rdb *redis.Client, logger *zap.Logger, roomID uint) {
	if rdb == nil {
		return
	}

	message := map[string]interface{}{
		"type":   "roomUpdate",
		"roomID": roomID,
	}
	messageJSON, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal room update", zap.Error(err))
		return
	}

	if err := rdb.Publish(ctx, RoomUpdateChannel(roomID), messageJSON).Err(); err != nil {
		logger.Error("Failed to publish room update", zap.Uint("roomID", roomID), zap.Error(err))
	}
}
