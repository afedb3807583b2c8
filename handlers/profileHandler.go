package handlers

import (
	"net/http"

	"quizserver/game"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileStats はユーザーの生涯統計の取得を処理するハンドラです。
// まだゲームを終えていないユーザーにはゼロ値の統計を返します。
func ProfileStats(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	stats, err := game.GetUserStats(db, userID)
	if err != nil {
		logger.Error("Failed to fetch user stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "統計の取得に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":            userID,
		"total_games_played": stats.TotalGamesPlayed,
		"total_wins":         stats.TotalWins,
		"total_score":        stats.TotalScore,
	})
}

// ProfileHistory はユーザーの直近の対戦履歴の取得を処理するハンドラです。
func ProfileHistory(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	history, err := game.GetUserHistory(db, userID, 20)
	if err != nil {
		logger.Error("Failed to fetch game history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "対戦履歴の取得に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, history)
}
