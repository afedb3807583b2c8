package models

// JoinByCodeRequest はルームコード（QRコード読み取り結果）による入室リクエストを表します。
type JoinByCodeRequest struct {
	RoomCode string `json:"room_code"`
}
