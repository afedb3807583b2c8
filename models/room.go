package models

import (
	"gorm.io/gorm"
)

// Room モデルの定義
type Room struct {
	gorm.Model
	RoomCode          string `gorm:"unique;not null"`            // 入室用コード（QRコードに埋め込まれる）
	OwnerID           uint   `gorm:"not null"`                   // ルーム作成者のユーザーID
	Status            string `gorm:"not null;default:'waiting'"` // "waiting", "playing", "finished"
	CurrentTurnUserID *uint  // 手番プレイヤーのユーザーID。playing中のみ非NULL
	WinnerID          *uint  // 勝者のユーザーID。finishedになった時点で確定
}

// Roomのステータス定数
const (
	RoomStatusWaiting  = "waiting"
	RoomStatusPlaying  = "playing"
	RoomStatusFinished = "finished"
)
