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

// RoomCreate は新しいルームの作成を処理するハンドラです。
// 作成者は最初の参加者として自動的に登録されます。
func RoomCreate(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	room, err := game.CreateRoom(c.Request.Context(), db, rdb, logger, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"room_id":   room.ID,
		"room_code": room.RoomCode,
		"status":    room.Status,
	})
}

// RoomStart はwaiting状態のルームの開始を処理するハンドラです。
func RoomStart(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	room, err := game.StartRoom(c.Request.Context(), db, rdb, logger, roomID, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id":              room.ID,
		"status":               room.Status,
		"current_turn_user_id": room.CurrentTurnUserID,
	})
}
