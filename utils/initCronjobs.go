package utils

import (
	"time"

	"quizserver/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func CronCleaner(db *gorm.DB, logger *zap.Logger) {
	c := cron.New()

	// 放置されたplayingルームをfinishedに更新するジョブ（毎日特定の時間に実行）
	c.AddFunc("@daily", func() {
		logger.Info("放置されたルームを終了する処理を開始")
		// 24時間更新がないplayingルームを勝者なしで終了させる
		abandonedRoomIDs := []uint{}
		db.Model(&models.Room{}).
			Where("status = ? AND updated_at <= ?", models.RoomStatusPlaying, time.Now().Add(-24*time.Hour)).
			Pluck("id", &abandonedRoomIDs)

		for _, roomID := range abandonedRoomIDs {
			db.Model(&models.Room{}).Where("id = ?", roomID).
				Updates(map[string]interface{}{
					"status":               models.RoomStatusFinished,
					"current_turn_user_id": nil,
				})

			// 参加者の成績は引き分け扱いにする
			db.Model(&models.GameResult{}).
				Where("room_id = ?", roomID).
				Update("result", models.ResultDraw)
		}
		if len(abandonedRoomIDs) > 0 {
			logger.Info("放置されたルームを終了しました", zap.Int("rooms_finished", len(abandonedRoomIDs)))
		}
	})

	// 誰も来ないまま古くなったwaitingルームを削除するジョブ（"分 時 日 月 曜日"）
	c.AddFunc("0 3 * * *", func() {
		logger.Info("古いwaitingルームを削除する処理を開始")
		staleRoomIDs := []uint{}
		db.Model(&models.Room{}).
			Where("status = ? AND updated_at <= ?", models.RoomStatusWaiting, time.Now().Add(-48*time.Hour)).
			Pluck("id", &staleRoomIDs)

		// それぞれのルームに対して参加情報を削除
		if len(staleRoomIDs) > 0 {
			db.Where("room_id IN ?", staleRoomIDs).Delete(&models.RoomPlayer{})
		}

		// 最後にルーム自体を削除
		result := db.Where("id IN ?", staleRoomIDs).Delete(&models.Room{})
		if result.Error != nil {
			logger.Error("古いwaitingルームの削除に失敗しました", zap.Error(result.Error))
		} else {
			logger.Info("古いwaitingルームの削除完了", zap.Int("rooms_deleted", int(result.RowsAffected)))
		}
	})

	c.Start()
}
