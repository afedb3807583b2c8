package handlers

import (
	"net/http"

	"quizserver/game"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoomState はルームの現在の状態の取得を処理するハンドラです。
func RoomState(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	state, err := game.GetRoomState(db, roomID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
