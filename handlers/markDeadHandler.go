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

// MarkDead は手番プレイヤーの自己脱落を処理するハンドラです。
// 脱落の結果、生き残りが一人になった場合はゲーム終了と勝者を返します。
func MarkDead(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "認証に失敗しました"})
		return
	}

	outcome, err := game.MarkDead(c.Request.Context(), db, rdb, logger, roomID, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	if outcome.GameEnded {
		c.JSON(http.StatusOK, gin.H{
			"message":           "脱落しました。ゲーム終了！",
			"game_won":          true,
			"winner_id":         outcome.WinnerID,
			"remaining_players": outcome.RemainingActive,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "脱落しました",
		"game_won":          false,
		"next_turn_user_id": outcome.NextTurnUserID,
		"remaining_players": outcome.RemainingActive,
	})
}
