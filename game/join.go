package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizserver/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxPlayers は一つのルームに参加できる人数の上限です。
const MaxPlayers = 4

// Join はユーザーをwaiting状態のルームに参加させます。
// 全ての事前チェックと参加登録は同一トランザクション内の同じスナップショットに対して
// 行われるため、並行する二つの入室が両方とも定員チェックを通過することはありません。
func Join(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger, roomID, userID uint) (*models.RoomPlayer, error) {
	mu := lockRoom(roomID)
	mu.Lock()
	defer mu.Unlock()

	var player models.RoomPlayer
	err := db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(KindNotFound, "ルームが見つかりません")
			}
			return err
		}

		if room.Status != models.RoomStatusWaiting {
			return newError(KindInvalidState, "このルームは現在入室を受け付けていません")
		}

		var activeCount int64
		if err := tx.Model(&models.RoomPlayer{}).
			Where("room_id = ? AND status = ?", roomID, models.PlayerStatusActive).
			Count(&activeCount).Error; err != nil {
			return err
		}
		if activeCount >= MaxPlayers {
			return newError(KindFull, fmt.Sprintf("ルームが満員です（最大%d人）", MaxPlayers))
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(KindNotFound, "ユーザーが見つかりません")
			}
			return err
		}

		// 同じルームへの二重参加を防止
		var existingCount int64
		if err := tx.Model(&models.RoomPlayer{}).
			Where("room_id = ? AND user_id = ?", roomID, userID).
			Count(&existingCount).Error; err != nil {
			return err
		}
		if existingCount > 0 {
			return newError(KindConflict, "すでにこのルームに参加しています")
		}

		player = models.RoomPlayer{
			RoomID:   roomID,
			UserID:   userID,
			Status:   models.PlayerStatusActive,
			JoinedAt: time.Now(),
		}
		return tx.Create(&player).Error
	})
	if err != nil {
		return nil, err
	}

	// 入室成功後の通知。失敗しても入室はロールバックしない
	NotifyRoomUpdate(ctx, rdb, logger, roomID)

	return &player, nil
}
