package game

import (
	"context"
	"testing"

	"quizserver/models"

	"go.uber.org/zap"
)

func TestGetUserStatsZeroValueForNewUser(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "新規ユーザー")

	stats, err := GetUserStats(db, userID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.UserID != userID {
		t.Fatalf("expected user %d, got %d", userID, stats.UserID)
	}
	if stats.TotalGamesPlayed != 0 || stats.TotalWins != 0 || stats.TotalScore != 0 {
		t.Fatalf("expected zero stats, got games=%d wins=%d score=%d",
			stats.TotalGamesPlayed, stats.TotalWins, stats.TotalScore)
	}
}

func TestGetUserHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	logger := zap.NewNop()

	userA := seedUser(t, db, "A")
	userB := seedUser(t, db, "B")

	// 一戦目はAの勝利、二戦目は途中でBが得点
	firstRoom := seedRoom(t, db, userA, models.RoomStatusPlaying)
	seedPlayer(t, db, firstRoom.ID, userA, models.PlayerStatusActive, 0)
	seedPlayer(t, db, firstRoom.ID, userB, models.PlayerStatusActive, 1)
	setTurn(t, db, firstRoom.ID, userA)
	if _, err := ApplyScore(ctx, db, nil, logger, firstRoom.ID, userB, 3); err != nil {
		t.Fatalf("first game B score: %v", err)
	}
	if _, err := ApplyScore(ctx, db, nil, logger, firstRoom.ID, userA, WinThreshold); err != nil {
		t.Fatalf("first game A win: %v", err)
	}

	secondRoom := seedRoom(t, db, userA, models.RoomStatusPlaying)
	seedPlayer(t, db, secondRoom.ID, userA, models.PlayerStatusActive, 0)
	seedPlayer(t, db, secondRoom.ID, userB, models.PlayerStatusActive, 1)
	setTurn(t, db, secondRoom.ID, userA)
	if _, err := ApplyScore(ctx, db, nil, logger, secondRoom.ID, userB, 5); err != nil {
		t.Fatalf("second game B score: %v", err)
	}

	history, err := GetUserHistory(db, userB, 20)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}

	// 新しい順に並ぶ
	if history[0].RoomID != secondRoom.ID {
		t.Fatalf("expected newest entry first, got room %d", history[0].RoomID)
	}
	if history[0].Score != 5 {
		t.Fatalf("expected score 5, got %d", history[0].Score)
	}
	if history[1].RoomID != firstRoom.ID {
		t.Fatalf("expected older entry second, got room %d", history[1].RoomID)
	}
	if history[1].Result != models.ResultLose {
		t.Fatalf("expected lose result in finished game, got %q", history[1].Result)
	}
	if history[1].RoomCode == "" {
		t.Fatal("expected room code in history entry")
	}
}

func TestGetUserHistoryRespectsLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	logger := zap.NewNop()

	userA := seedUser(t, db, "A")
	userB := seedUser(t, db, "B")
	for i := 0; i < 3; i++ {
		room := seedRoom(t, db, userA, models.RoomStatusPlaying)
		seedPlayer(t, db, room.ID, userA, models.PlayerStatusActive, 0)
		seedPlayer(t, db, room.ID, userB, models.PlayerStatusActive, 1)
		setTurn(t, db, room.ID, userA)
		if _, err := ApplyScore(ctx, db, nil, logger, room.ID, userA, 1); err != nil {
			t.Fatalf("game %d score: %v", i, err)
		}
	}

	history, err := GetUserHistory(db, userA, 2)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries with limit 2, got %d", len(history))
	}
}
