package game

import (
	"context"
	"errors"
	"strings"
	"time"

	"quizserver/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// generateRoomCode は入室用コードを生成します。QRコードに埋め込まれます。
func generateRoomCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

// CreateRoom は新しいルームを作成し、作成者を最初の参加者として登録します。
func CreateRoom(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger, ownerID uint) (*models.Room, error) {
	var room models.Room
	err := db.Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.First(&owner, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(KindNotFound, "ユーザーが見つかりません")
			}
			return err
		}

		room = models.Room{
			RoomCode: generateRoomCode(),
			OwnerID:  ownerID,
			Status:   models.RoomStatusWaiting,
		}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}

		// 作成者は自動的に最初の参加者になる
		player := models.RoomPlayer{
			RoomID:   room.ID,
			UserID:   ownerID,
			Status:   models.PlayerStatusActive,
			JoinedAt: time.Now(),
		}
		return tx.Create(&player).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("ルームを作成しました", zap.Uint("roomID", room.ID), zap.String("roomCode", room.RoomCode))
	return &room, nil
}

// FindRoomByCode は入室用コードからルームを検索します。
func FindRoomByCode(db *gorm.DB, roomCode string) (*models.Room, error) {
	var room models.Room
	if err := db.Where("room_code = ?", strings.ToUpper(strings.TrimSpace(roomCode))).
		First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "ルームが見つかりません")
		}
		return nil, err
	}
	return &room, nil
}

// StartRoom はwaiting状態のルームをplayingに遷移させ、最初に参加した
// プレイヤーに手番を与えます。この遷移はターン状態機械の外側にある操作で、
// ルーム作成者の明示的なリクエストによってのみ発生します。
func StartRoom(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger, roomID, userID uint) (*models.Room, error) {
	mu := lockRoom(roomID)
	mu.Lock()
	defer mu.Unlock()

	var room models.Room
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(KindNotFound, "ルームが見つかりません")
			}
			return err
		}

		if room.Status != models.RoomStatusWaiting {
			return newError(KindInvalidState, "このルームはすでに開始されています")
		}

		if room.OwnerID != userID {
			return newError(KindNotYourTurn, "ゲームを開始できるのはルーム作成者のみです")
		}

		active, err := activePlayers(tx, roomID)
		if err != nil {
			return err
		}
		if len(active) < 2 {
			return newError(KindInvalidState, "ゲームの開始には2人以上のプレイヤーが必要です")
		}

		// 最初に参加したプレイヤーから開始
		firstTurnUserID := active[0].UserID
		if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Updates(map[string]interface{}{
				"status":               models.RoomStatusPlaying,
				"current_turn_user_id": firstTurnUserID,
			}).Error; err != nil {
			return err
		}
		room.Status = models.RoomStatusPlaying
		room.CurrentTurnUserID = &firstTurnUserID
		return nil
	})
	if err != nil {
		return nil, err
	}

	NotifyRoomUpdate(ctx, rdb, logger, roomID)

	return &room, nil
}
