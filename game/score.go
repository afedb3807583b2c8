package game

import (
	"context"
	"errors"
	"time"

	"quizserver/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WinThreshold はこのスコアに到達したプレイヤーが勝利するしきい値です。
const WinThreshold = 10

// ScoreOutcome はスコア加算処理の結果です。
type ScoreOutcome struct {
	NewScore  int  // 加算後の累積スコア
	GameEnded bool // しきい値に到達してゲームが終了したかどうか
}

// ApplyScore は正答したプレイヤーのスコアを加算します。GameResultの行は
// 最初の加算時に作成され、以降は累積されます。加算後のスコアがしきい値に
// 到達した場合、そのプレイヤーが勝者となりルームは終了します。
func ApplyScore(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger, roomID, userID uint, delta int) (*ScoreOutcome, error) {
	if delta <= 0 {
		return nil, newError(KindInvalidInput, "スコア加算値は正の整数で指定してください")
	}

	mu := lockRoom(roomID)
	mu.Lock()
	defer mu.Unlock()

	outcome := &ScoreOutcome{}
	err := db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(KindNotFound, "ルームが見つかりません")
			}
			return err
		}

		var member models.RoomPlayer
		if err := tx.Where("room_id = ? AND user_id = ?", roomID, userID).
			First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(KindNotFound, "このルームの参加者ではありません")
			}
			return err
		}

		now := time.Now()
		var result models.GameResult
		err := tx.Where("room_id = ? AND user_id = ?", roomID, userID).
			First(&result).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 初回の加算時に成績行を作成。resultは暫定値で、確定はfinalizeRoomが行う
			initialResult := models.ResultLose
			if delta >= WinThreshold {
				initialResult = models.ResultWin
			}
			result = models.GameResult{
				RoomID:     roomID,
				UserID:     userID,
				Score:      delta,
				Result:     initialResult,
				FinishedAt: now,
			}
			if err := tx.Create(&result).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			result.Score += delta
			if err := tx.Model(&result).Updates(map[string]interface{}{
				"score":       result.Score,
				"finished_at": now,
			}).Error; err != nil {
				return err
			}
		}

		outcome.NewScore = result.Score

		// 勝利条件の判定。finalizeRoomはすでにfinishedのルームには何もしないため、
		// 確定処理が二重に実行されることはない
		if result.Score >= WinThreshold && room.Status == models.RoomStatusPlaying {
			if err := finalizeRoom(tx, &room, userID); err != nil {
				return err
			}
			outcome.GameEnded = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	NotifyRoomUpdate(ctx, rdb, logger, roomID)

	return outcome, nil
}
