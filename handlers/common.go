package handlers

import (
	"net/http"
	"strconv"

	"quizserver/game"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// parseRoomID はURLパラメータからルームIDを取り出します。
func parseRoomID(c *gin.Context) (uint, bool) {
	roomIDUint, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不正なルームIDです"})
		return 0, false
	}
	return uint(roomIDUint), true
}

// parseUserID はURLパラメータからユーザーIDを取り出します。
func parseUserID(c *gin.Context) (uint, bool) {
	userIDUint, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不正なユーザーIDです"})
		return 0, false
	}
	return uint(userIDUint), true
}

// respondError はゲーム操作エラーを対応するHTTPステータスで返します。
// 分類されないエラーは500として扱います。
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := game.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Unhandled game operation error", zap.Error(err))
		c.JSON(status, gin.H{"error": "サーバー内部でエラーが発生しました"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
