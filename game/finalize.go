package game

import (
	"time"

	"quizserver/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// finalizeRoom はルームをfinishedに確定し、参加者の成績と生涯統計を更新します。
// 呼び出し元と同一トランザクション内で実行されます。すでにfinishedのルームには
// 何もしないため、勝者・手番・ステータスが二度変更されることはありません。
func finalizeRoom(tx *gorm.DB, room *models.Room, winnerID uint) error {
	if room.Status == models.RoomStatusFinished {
		return nil
	}

	now := time.Now()
	if err := tx.Model(&models.Room{}).
		Where("id = ? AND status <> ?", room.ID, models.RoomStatusFinished).
		Updates(map[string]interface{}{
			"status":               models.RoomStatusFinished,
			"winner_id":            winnerID,
			"current_turn_user_id": nil,
		}).Error; err != nil {
		return err
	}
	room.Status = models.RoomStatusFinished
	room.WinnerID = &winnerID
	room.CurrentTurnUserID = nil

	// 勝者のresultをwinに、他の参加者の既存の成績行をloseに確定
	if err := tx.Model(&models.GameResult{}).
		Where("room_id = ? AND user_id = ?", room.ID, winnerID).
		Updates(map[string]interface{}{"result": models.ResultWin, "finished_at": now}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.GameResult{}).
		Where("room_id = ? AND user_id <> ?", room.ID, winnerID).
		Updates(map[string]interface{}{"result": models.ResultLose, "finished_at": now}).Error; err != nil {
		return err
	}

	// 生涯統計のロールアップ。ルームの全参加者に対して一度だけ実行される。
	// 成績行を持たない参加者は0点扱いで、参加ゲーム数だけが加算される
	players, err := allPlayers(tx, room.ID)
	if err != nil {
		return err
	}

	var results []models.GameResult
	if err := tx.Where("room_id = ?", room.ID).Find(&results).Error; err != nil {
		return err
	}
	scores := make(map[uint]int, len(results))
	for _, r := range results {
		scores[r.UserID] = r.Score
	}

	for _, p := range players {
		winIncrement := 0
		if p.UserID == winnerID {
			winIncrement = 1
		}
		finalScore := scores[p.UserID]

		stats := models.UserStats{
			UserID:           p.UserID,
			TotalGamesPlayed: 1,
			TotalWins:        winIncrement,
			TotalScore:       finalScore,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_games_played": gorm.Expr("total_games_played + 1"),
				"total_wins":         gorm.Expr("total_wins + ?", winIncrement),
				"total_score":        gorm.Expr("total_score + ?", finalScore),
				"updated_at":         now,
			}),
		}).Create(&stats).Error; err != nil {
			return err
		}
	}

	return nil
}
