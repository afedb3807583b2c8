package game

import (
	"errors"
	"time"

	"quizserver/models"

	"gorm.io/gorm"
)

// GameHistoryEntry はプロフィール画面の対戦履歴一件分です。
type GameHistoryEntry struct {
	RoomID     uint      `json:"room_id"`
	RoomCode   string    `json:"room_code"`
	Score      int       `json:"score"`
	Result     string    `json:"result"`
	FinishedAt time.Time `json:"finished_at"`
}

// GetUserStats はユーザーの生涯統計を取得します。
// まだ一度もゲームを終えていないユーザーにはゼロ値の統計を返します。
func GetUserStats(db *gorm.DB, userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	if err := db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserStats{UserID: userID}, nil
		}
		return nil, err
	}
	return &stats, nil
}

// GetUserHistory は直近の対戦履歴を新しい順に最大limit件返します。
func GetUserHistory(db *gorm.DB, userID uint, limit int) ([]GameHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	var entries []GameHistoryEntry
	if err := db.Model(&models.GameResult{}).
		Select("game_results.room_id, rooms.room_code, game_results.score, game_results.result, game_results.finished_at").
		Joins("JOIN rooms ON rooms.id = game_results.room_id").
		Where("game_results.user_id = ?", userID).
		Order("game_results.finished_at DESC").
		Limit(limit).
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
