package handlers

import (
	"net/http"

	"quizserver/game"
	"quizserver/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SkipTurn は手番のスキップを処理するハンドラです。
func SkipTurn(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	nextUserID, err := game.SkipTurn(c.Request.Context(), db, rdb, logger, roomID, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "手番をスキップしました",
		"next_turn_user_id": nextUserID,
	})
}
