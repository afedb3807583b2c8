package handlers

import (
	"net/http"

	"quizserver/questions"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RandomQuestion は指定された難易度の問題をランダムに一問返すハンドラです。
func RandomQuestion(c *gin.Context, bank *questions.Bank, logger *zap.Logger) {
	difficulty := c.Query("difficulty")
	if !questions.IsValidDifficulty(difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "難易度の指定が不正です"})
		return
	}

	question, found := bank.Random(difficulty)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "指定された難易度の問題が見つかりません"})
		return
	}

	c.JSON(http.StatusOK, question)
}
