package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomPlayer はルームへの参加情報を表します。
// JoinedAtの昇順がそのままターンの回り順になります。
type RoomPlayer struct {
	gorm.Model
	RoomID   uint      `gorm:"not null;uniqueIndex:idx_room_user"` // 同じルームに同じユーザーは一度だけ参加できる
	UserID   uint      `gorm:"not null;uniqueIndex:idx_room_user"`
	Status   string    `gorm:"not null;default:'active'"` // "active" または "dead"
	JoinedAt time.Time `gorm:"not null"`                  // 参加時刻。ターン順を決定する
}

// RoomPlayerのステータス定数
const (
	PlayerStatusActive = "active"
	PlayerStatusDead   = "dead"
)
