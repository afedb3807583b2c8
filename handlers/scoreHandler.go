package handlers

import (
	"net/http"

	"quizserver/game"
	"quizserver/middlewares"
	"quizserver/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpdateScore は正答時のスコア加算を処理するハンドラです。
func UpdateScore(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	var request models.ScoreUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Score update request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	outcome, err := game.ApplyScore(c.Request.Context(), db, rdb, logger, roomID, userID, request.ScoreIncrement)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "スコアを更新しました",
		"new_score": outcome.NewScore,
		"game_won":  outcome.GameEnded,
	})
}
