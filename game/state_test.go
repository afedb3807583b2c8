package game

import (
	"context"
	"testing"

	"quizserver/models"

	"go.uber.org/zap"
)

func TestGetRoomState(t *testing.T) {
	db := newTestDB(t)
	room, users := seedPlayingRoom(t, db, 3)

	if _, err := ApplyScore(context.Background(), db, nil, zap.NewNop(), room.ID, users[1], 4); err != nil {
		t.Fatalf("apply score: %v", err)
	}
	if _, err := MarkDead(context.Background(), db, nil, zap.NewNop(), room.ID, users[0]); err != nil {
		t.Fatalf("mark dead: %v", err)
	}

	state, err := GetRoomState(db, room.ID)
	if err != nil {
		t.Fatalf("get room state: %v", err)
	}
	if state.RoomID != room.ID || state.Status != models.RoomStatusPlaying {
		t.Fatalf("unexpected room state: id=%d status=%q", state.RoomID, state.Status)
	}
	if state.PlayerCount != 3 || len(state.Players) != 3 {
		t.Fatalf("expected 3 players, got count=%d len=%d", state.PlayerCount, len(state.Players))
	}

	// プレイヤーは参加時刻順に並ぶ
	for i, p := range state.Players {
		if p.UserID != users[i] {
			t.Fatalf("player %d: expected user %d, got %d", i, users[i], p.UserID)
		}
		if p.Nickname == "" {
			t.Fatalf("player %d: missing nickname", i)
		}
	}

	if state.Players[0].Status != models.PlayerStatusDead {
		t.Fatalf("first player should be dead, got %q", state.Players[0].Status)
	}
	if state.Players[1].Score != 4 {
		t.Fatalf("expected score 4 for second player, got %d", state.Players[1].Score)
	}
	if state.Players[2].Score != 0 {
		t.Fatalf("expected score 0 for third player, got %d", state.Players[2].Score)
	}
	if state.CurrentTurnUserID == nil || *state.CurrentTurnUserID != users[1] {
		t.Fatal("current turn should be on second player")
	}
}

func TestGetRoomStateNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := GetRoomState(db, 9999)
	assertKind(t, err, KindNotFound)
}
