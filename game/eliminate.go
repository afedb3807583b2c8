package game

import (
	"context"

	"quizserver/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MarkDeadOutcome は自己脱落処理の結果です。
type MarkDeadOutcome struct {
	GameEnded       bool // 生き残りが一人になってゲームが終了したかどうか
	WinnerID        uint // ゲームが終了した場合の勝者
	NextTurnUserID  uint // ゲームが続行する場合の次の手番プレイヤー
	RemainingActive int  // 脱落処理後に残っているactiveプレイヤー数
}

// MarkDead は手番を持つプレイヤーを脱落させます。activeからdeadへの遷移は
// 一方向で、元に戻ることはありません。脱落の結果activeプレイヤーが一人だけに
// なった場合、その一人が勝者となりルームは終了します。それ以外の場合は
// 脱落者の席から円環順に次のactiveプレイヤーへ手番が移ります。
func MarkDead(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger, roomID, userID uint) (*MarkDeadOutcome, error) {
	mu := lockRoom(roomID)
	mu.Lock()
	defer mu.Unlock()

	outcome := &MarkDeadOutcome{}
	err := db.Transaction(func(tx *gorm.DB) error {
		room, err := validateTurn(tx, roomID, userID)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.RoomPlayer{}).
			Where("room_id = ? AND user_id = ?", roomID, userID).
			Update("status", models.PlayerStatusDead).Error; err != nil {
			return err
		}

		active, err := activePlayers(tx, roomID)
		if err != nil {
			return err
		}
		outcome.RemainingActive = len(active)

		if len(active) == 0 {
			// 手番を持っていたプレイヤーはactiveだったはずなので、ここには来ない。
			// トランザクションを失敗させて脱落処理ごと巻き戻す
			return newError(KindNoActivePlayers, "activeなプレイヤーが残っていません")
		}

		if len(active) == 1 {
			// 生き残りが一人になったらその人が勝者
			winnerID := active[0].UserID
			if err := finalizeRoom(tx, room, winnerID); err != nil {
				return err
			}
			outcome.GameEnded = true
			outcome.WinnerID = winnerID
			return nil
		}

		// ゲーム続行。脱落者の席から円環順に次のactiveプレイヤーを探す
		roster, err := allPlayers(tx, roomID)
		if err != nil {
			return err
		}
		next, ok := nextInRing(roster, userID)
		if !ok {
			return newError(KindNoActivePlayers, "activeなプレイヤーが見つかりません")
		}

		outcome.NextTurnUserID = next
		return tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("current_turn_user_id", next).Error
	})
	if err != nil {
		return nil, err
	}

	NotifyRoomUpdate(ctx, rdb, logger, roomID)

	return outcome, nil
}
