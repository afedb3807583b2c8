package game

import (
	"context"
	"errors"

	"quizserver/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// validateTurn はルームがplaying中で、かつ呼び出したユーザーが手番を
// 持っていることを確認し、ルームを返します。
func validateTurn(tx *gorm.DB, roomID, userID uint) (*models.Room, error) {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "ルームが見つかりません")
		}
		return nil, err
	}

	if room.Status != models.RoomStatusPlaying {
		return nil, newError(KindInvalidState, "ゲームは進行中ではありません")
	}

	if room.CurrentTurnUserID == nil || *room.CurrentTurnUserID != userID {
		return nil, newError(KindNotYourTurn, "あなたの手番ではありません")
	}

	return &room, nil
}

// activePlayers は参加時刻順のactiveプレイヤー一覧を返します。
func activePlayers(tx *gorm.DB, roomID uint) ([]models.RoomPlayer, error) {
	var players []models.RoomPlayer
	err := tx.Where("room_id = ? AND status = ?", roomID, models.PlayerStatusActive).
		Order("joined_at ASC").
		Find(&players).Error
	return players, err
}

// allPlayers は脱落者を含む参加時刻順の全プレイヤー一覧を返します。
func allPlayers(tx *gorm.DB, roomID uint) ([]models.RoomPlayer, error) {
	var players []models.RoomPlayer
	err := tx.Where("room_id = ?", roomID).
		Order("joined_at ASC").
		Find(&players).Error
	return players, err
}

// nextInRing は参加時刻順のロスターを円環として扱い、fromUserの次の
// activeプレイヤーを探します。脱落者はスキップし、一周して最初に見つかった
// activeプレイヤーを返します。見つからない場合はfalseを返します。
func nextInRing(roster []models.RoomPlayer, fromUserID uint) (uint, bool) {
	currentIndex := -1
	for i, p := range roster {
		if p.UserID == fromUserID {
			currentIndex = i
			break
		}
	}
	if currentIndex == -1 {
		return 0, false
	}

	for i := 1; i <= len(roster); i++ {
		candidate := roster[(currentIndex+i)%len(roster)]
		if candidate.Status == models.PlayerStatusActive {
			return candidate.UserID, true
		}
	}
	return 0, false
}

// SkipTurn は手番を次のactiveプレイヤーに回します。プレイヤーの状態は変更しません。
// 戻り値は次に手番を持つユーザーのIDです。
func SkipTurn(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger, roomID, userID uint) (uint, error) {
	mu := lockRoom(roomID)
	mu.Lock()
	defer mu.Unlock()

	var nextUserID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		room, err := validateTurn(tx, roomID, userID)
		if err != nil {
			return err
		}

		roster, err := allPlayers(tx, roomID)
		if err != nil {
			return err
		}

		next, ok := nextInRing(roster, userID)
		if !ok {
			// playing中のルームでは到達しないはずの防御的チェック
			return newError(KindNoActivePlayers, "activeなプレイヤーが見つかりません")
		}

		nextUserID = next
		return tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("current_turn_user_id", next).Error
	})
	if err != nil {
		return 0, err
	}

	NotifyRoomUpdate(ctx, rdb, logger, roomID)

	return nextUserID, nil
}
