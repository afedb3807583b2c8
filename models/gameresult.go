package models

import (
	"time"

	"gorm.io/gorm"
)

// GameResult はルーム内での個人成績を表します。
// 最初のスコア加算時に作成され、以降はスコアが累積されます。
type GameResult struct {
	gorm.Model
	RoomID     uint      `gorm:"not null;uniqueIndex:idx_result_room_user"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_result_room_user"`
	Score      int       `gorm:"not null;default:0"`        // ルーム内での累積スコア
	Result     string    `gorm:"not null;default:'lose'"`   // "win", "lose", "draw"
	FinishedAt time.Time // 最終更新時刻
}

// GameResultの結果定数
const (
	ResultWin  = "win"
	ResultLose = "lose"
	ResultDraw = "draw"
)
