package game

import (
	"context"
	"testing"

	"quizserver/models"

	"go.uber.org/zap"
)

func TestMarkDeadAdvancesTurnFromEliminatedSeat(t *testing.T) {
	db := newTestDB(t)
	room, users := seedPlayingRoom(t, db, 4)
	setTurn(t, db, room.ID, users[1])

	outcome, err := MarkDead(context.Background(), db, nil, zap.NewNop(), room.ID, users[1])
	if err != nil {
		t.Fatalf("mark dead: %v", err)
	}
	if outcome.GameEnded {
		t.Fatal("game should continue with 3 active players")
	}
	// 脱落者の席から円環順に次のactiveプレイヤーへ
	if outcome.NextTurnUserID != users[2] {
		t.Fatalf("expected next turn user %d, got %d", users[2], outcome.NextTurnUserID)
	}
	if outcome.RemainingActive != 3 {
		t.Fatalf("expected 3 remaining, got %d", outcome.RemainingActive)
	}

	player := fetchPlayer(t, db, room.ID, users[1])
	if player.Status != models.PlayerStatusDead {
		t.Fatalf("expected dead status, got %q", player.Status)
	}
	updated := fetchRoom(t, db, room.ID)
	if updated.Status != models.RoomStatusPlaying {
		t.Fatalf("room should stay playing, got %q", updated.Status)
	}
}

func TestMarkDeadWrapsFromLastSeat(t *testing.T) {
	db := newTestDB(t)
	room, users := seedPlayingRoom(t, db, 3)
	setTurn(t, db, room.ID, users[2])

	outcome, err := MarkDead(context.Background(), db, nil, zap.NewNop(), room.ID, users[2])
	if err != nil {
		t.Fatalf("mark dead: %v", err)
	}
	if outcome.NextTurnUserID != users[0] {
		t.Fatalf("expected wrap to first player %d, got %d", users[0], outcome.NextTurnUserID)
	}
}

func TestMarkDeadLastOpponentEndsGame(t *testing.T) {
	db := newTestDB(t)
	room, users := seedPlayingRoom(t, db, 2)

	outcome, err := MarkDead(context.Background(), db, nil, zap.NewNop(), room.ID, users[0])
	if err != nil {
		t.Fatalf("mark dead: %v", err)
	}
	if !outcome.GameEnded {
		t.Fatal("expected game to end with one survivor")
	}
	if outcome.WinnerID != users[1] {
		t.Fatalf("expected winner %d, got %d", users[1], outcome.WinnerID)
	}

	updated := fetchRoom(t, db, room.ID)
	if updated.Status != models.RoomStatusFinished {
		t.Fatalf("expected finished room, got %q", updated.Status)
	}
	if updated.WinnerID == nil || *updated.WinnerID != users[1] {
		t.Fatal("winner_id not recorded")
	}
	if updated.CurrentTurnUserID != nil {
		t.Fatal("current_turn_user_id should be cleared on finish")
	}

	// 生涯統計は全参加者分が加算される。スコア行がなくても参加ゲーム数は増える
	winnerStats := fetchStats(t, db, users[1])
	if winnerStats.TotalGamesPlayed != 1 || winnerStats.TotalWins != 1 {
		t.Fatalf("winner stats: games=%d wins=%d", winnerStats.TotalGamesPlayed, winnerStats.TotalWins)
	}
	loserStats := fetchStats(t, db, users[0])
	if loserStats.TotalGamesPlayed != 1 || loserStats.TotalWins != 0 {
		t.Fatalf("loser stats: games=%d wins=%d", loserStats.TotalGamesPlayed, loserStats.TotalWins)
	}
}

func TestMarkDeadSequentialEliminations(t *testing.T) {
	db := newTestDB(t)
	room, users := seedPlayingRoom(t, db, 4)
	ctx := context.Background()
	logger := zap.NewNop()

	// 手番プレイヤーが順に脱落していき、最後の一人が勝者になる
	out1, err := MarkDead(ctx, db, nil, logger, room.ID, users[0])
	if err != nil {
		t.Fatalf("first elimination: %v", err)
	}
	if out1.GameEnded || out1.NextTurnUserID != users[1] {
		t.Fatalf("after first elimination: ended=%v next=%d", out1.GameEnded, out1.NextTurnUserID)
	}

	out2, err := MarkDead(ctx, db, nil, logger, room.ID, users[1])
	if err != nil {
		t.Fatalf("second elimination: %v", err)
	}
	if out2.GameEnded || out2.NextTurnUserID != users[2] {
		t.Fatalf("after second elimination: ended=%v next=%d", out2.GameEnded, out2.NextTurnUserID)
	}

	out3, err := MarkDead(ctx, db, nil, logger, room.ID, users[2])
	if err != nil {
		t.Fatalf("third elimination: %v", err)
	}
	if !out3.GameEnded {
		t.Fatal("expected game to end after third elimination")
	}
	if out3.WinnerID != users[3] {
		t.Fatalf("expected winner %d, got %d", users[3], out3.WinnerID)
	}

	// 全参加者の生涯統計が一度ずつ加算されている
	for i, uid := range users {
		stats := fetchStats(t, db, uid)
		if stats.TotalGamesPlayed != 1 {
			t.Fatalf("user %d: games=%d", i, stats.TotalGamesPlayed)
		}
		wantWins := 0
		if uid == users[3] {
			wantWins = 1
		}
		if stats.TotalWins != wantWins {
			t.Fatalf("user %d: wins=%d want=%d", i, stats.TotalWins, wantWins)
		}
	}
}

func TestMarkDeadIsOneWay(t *testing.T) {
	db := newTestDB(t)
	room, users := seedPlayingRoom(t, db, 3)

	if _, err := MarkDead(context.Background(), db, nil, zap.NewNop(), room.ID, users[0]); err != nil {
		t.Fatalf("mark dead: %v", err)
	}

	// 脱落者は手番を持てないため、以降の操作は全て拒否される
	_, err := SkipTurn(context.Background(), db, nil, zap.NewNop(), room.ID, users[0])
	assertKind(t, err, KindNotYourTurn)
	_, err = MarkDead(context.Background(), db, nil, zap.NewNop(), room.ID, users[0])
	assertKind(t, err, KindNotYourTurn)

	player := fetchPlayer(t, db, room.ID, users[0])
	if player.Status != models.PlayerStatusDead {
		t.Fatalf("player should remain dead, got %q", player.Status)
	}
}

func TestMarkDeadNotYourTurn(t *testing.T) {
	db := newTestDB(t)
	room, users := seedPlayingRoom(t, db, 3)

	_, err := MarkDead(context.Background(), db, nil, zap.NewNop(), room.ID, users[2])
	assertKind(t, err, KindNotYourTurn)

	// 拒否された操作で状態が変わらないこと
	player := fetchPlayer(t, db, room.ID, users[2])
	if player.Status != models.PlayerStatusActive {
		t.Fatalf("player should remain active, got %q", player.Status)
	}
}

func TestMarkDeadRoomNotPlaying(t *testing.T) {
	db := newTestDB(t)
	ownerID := seedUser(t, db, "オーナー")
	room := seedRoom(t, db, ownerID, models.RoomStatusWaiting)
	seedPlayer(t, db, room.ID, ownerID, models.PlayerStatusActive, 0)

	_, err := MarkDead(context.Background(), db, nil, zap.NewNop(), room.ID, ownerID)
	assertKind(t, err, KindInvalidState)
}
