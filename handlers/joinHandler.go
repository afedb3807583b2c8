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

// RoomJoin はルームIDを指定した入室を処理するハンドラです。
func RoomJoin(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	player, err := game.Join(c.Request.Context(), db, rdb, logger, roomID, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        player.ID,
		"room_id":   player.RoomID,
		"user_id":   player.UserID,
		"joined_at": player.JoinedAt,
	})
}

// RoomJoinByCode はルームコード（QRコード読み取り結果）による入室を処理するハンドラです。
func RoomJoinByCode(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	var request models.JoinByCodeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Join by code request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.RoomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ルームコードは必須です"})
		return
	}

	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	room, err := game.FindRoomByCode(db, request.RoomCode)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	player, err := game.Join(c.Request.Context(), db, rdb, logger, room.ID, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        player.ID,
		"room_id":   player.RoomID,
		"user_id":   player.UserID,
		"joined_at": player.JoinedAt,
	})
}
