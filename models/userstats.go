package models

import (
	"gorm.io/gorm"
)

// UserStats はユーザーの生涯成績の集計です。
// ゲーム終了時に全参加者分が一度だけ加算されます。減算されることはありません。
type UserStats struct {
	gorm.Model
	UserID           uint `gorm:"uniqueIndex;not null"`
	TotalGamesPlayed int  `gorm:"not null;default:0"` // 参加したゲームの総数
	TotalWins        int  `gorm:"not null;default:0"` // 勝利数
	TotalScore       int  `gorm:"not null;default:0"` // 獲得スコアの総計
}
