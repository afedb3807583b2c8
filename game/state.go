package game

import (
	"errors"
	"time"

	"quizserver/models"

	"gorm.io/gorm"
)

// PlayerState はルーム状態応答に含まれる参加者一人分の情報です。
type PlayerState struct {
	UserID   uint      `json:"user_id"`
	Nickname string    `json:"nickname"`
	Status   string    `json:"status"`
	Score    int       `json:"score"`
	JoinedAt time.Time `json:"joined_at"`
}

// RoomState はルームの概要と参加時刻順のプレイヤー一覧です。
type RoomState struct {
	RoomID            uint          `json:"room_id"`
	RoomCode          string        `json:"room_code"`
	Status            string        `json:"status"`
	OwnerID           uint          `json:"owner_id"`
	CurrentTurnUserID *uint         `json:"current_turn_user_id"`
	WinnerID          *uint         `json:"winner_id"`
	PlayerCount       int           `json:"player_count"`
	CreatedAt         time.Time     `json:"created_at"`
	Players           []PlayerState `json:"players"`
}

// GetRoomState はルームの現在の状態を取得します。
func GetRoomState(db *gorm.DB, roomID uint) (*RoomState, error) {
	var room models.Room
	if err := db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "ルームが見つかりません")
		}
		return nil, err
	}

	// プレイヤー一覧をニックネーム付きで取得
	var rows []struct {
		UserID   uint
		Nickname string
		Status   string
		JoinedAt time.Time
	}
	if err := db.Model(&models.RoomPlayer{}).
		Select("room_players.user_id, users.nickname, room_players.status, room_players.joined_at").
		Joins("JOIN users ON users.id = room_players.user_id").
		Where("room_players.room_id = ?", roomID).
		Order("room_players.joined_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	// ルーム内スコアを取得してプレイヤーに紐づける
	var results []models.GameResult
	if err := db.Where("room_id = ?", roomID).Find(&results).Error; err != nil {
		return nil, err
	}
	scores := make(map[uint]int, len(results))
	for _, r := range results {
		scores[r.UserID] = r.Score
	}

	players := make([]PlayerState, 0, len(rows))
	for _, row := range rows {
		players = append(players, PlayerState{
			UserID:   row.UserID,
			Nickname: row.Nickname,
			Status:   row.Status,
			Score:    scores[row.UserID],
			JoinedAt: row.JoinedAt,
		})
	}

	return &RoomState{
		RoomID:            room.ID,
		RoomCode:          room.RoomCode,
		Status:            room.Status,
		OwnerID:           room.OwnerID,
		CurrentTurnUserID: room.CurrentTurnUserID,
		WinnerID:          room.WinnerID,
		PlayerCount:       len(players),
		CreatedAt:         room.CreatedAt,
		Players:           players,
	}, nil
}
