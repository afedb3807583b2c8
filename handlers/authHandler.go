package handlers

import (
	"net/http"

	"quizserver/middlewares"
	"quizserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GuestAuth はゲストユーザーの認証を処理するハンドラです。
// 有効なトークンが提示された場合はそのユーザーIDを返し、
// 無効または未提示の場合は新しいユーザーとトークンを発行します。
func GuestAuth(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var request models.GuestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Guest auth request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nickname := request.Nickname
	if nickname == "" {
		nickname = "ゲスト"
	}

	// TokenAuthentication関数でJWTの有効性を確認、無効であれば新しいトークンを発行する
	userID, newToken, tokenValid, err := middlewares.TokenAuthentication(c, db, logger, nickname)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "トークン生成に失敗しました"})
		return
	}

	if tokenValid && newToken == "" {
		// トークンが有効でそのまま使える場合
		c.JSON(http.StatusOK, gin.H{"userId": userID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "token": newToken})
}
