package game

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"quizserver/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var roomCodeSeq uint64

// newTestDB はインメモリのSQLiteデータベースを作成してマイグレーションします。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// インメモリDBは接続ごとに独立するため、単一接続に固定する
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomPlayer{},
		&models.GameResult{},
		&models.UserStats{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, nickname string) uint {
	t.Helper()
	user := models.User{Nickname: nickname}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", nickname, err)
	}
	return user.ID
}

func seedRoom(t *testing.T, db *gorm.DB, ownerID uint, status string) *models.Room {
	t.Helper()
	room := models.Room{
		RoomCode: fmt.Sprintf("T%05d", atomic.AddUint64(&roomCodeSeq, 1)),
		OwnerID:  ownerID,
		Status:   status,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return &room
}

// seedPlayer は指定した参加時刻オフセットでプレイヤーを登録します。
// オフセットの昇順がターンの回り順になります。
func seedPlayer(t *testing.T, db *gorm.DB, roomID, userID uint, status string, seat int) {
	t.Helper()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	player := models.RoomPlayer{
		RoomID:   roomID,
		UserID:   userID,
		Status:   status,
		JoinedAt: base.Add(time.Duration(seat) * time.Minute),
	}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed player user=%d: %v", userID, err)
	}
}

func setTurn(t *testing.T, db *gorm.DB, roomID, userID uint) {
	t.Helper()
	if err := db.Model(&models.Room{}).Where("id = ?", roomID).
		Update("current_turn_user_id", userID).Error; err != nil {
		t.Fatalf("set turn: %v", err)
	}
}

// seedPlayingRoom は指定人数のプレイヤーが参加したplaying中のルームを作成し、
// 最初のプレイヤーに手番を与えます。戻り値はルームと参加時刻順のユーザーID一覧です。
func seedPlayingRoom(t *testing.T, db *gorm.DB, playerCount int) (*models.Room, []uint) {
	t.Helper()
	userIDs := make([]uint, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		userIDs = append(userIDs, seedUser(t, db, fmt.Sprintf("プレイヤー%d", i+1)))
	}
	room := seedRoom(t, db, userIDs[0], models.RoomStatusPlaying)
	for i, uid := range userIDs {
		seedPlayer(t, db, room.ID, uid, models.PlayerStatusActive, i)
	}
	setTurn(t, db, room.ID, userIDs[0])
	return room, userIDs
}

func fetchRoom(t *testing.T, db *gorm.DB, roomID uint) *models.Room {
	t.Helper()
	var room models.Room
	if err := db.First(&room, roomID).Error; err != nil {
		t.Fatalf("fetch room: %v", err)
	}
	return &room
}

func fetchPlayer(t *testing.T, db *gorm.DB, roomID, userID uint) *models.RoomPlayer {
	t.Helper()
	var player models.RoomPlayer
	if err := db.Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&player).Error; err != nil {
		t.Fatalf("fetch player user=%d: %v", userID, err)
	}
	return &player
}

func fetchStats(t *testing.T, db *gorm.DB, userID uint) *models.UserStats {
	t.Helper()
	var stats models.UserStats
	if err := db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		t.Fatalf("fetch stats user=%d: %v", userID, err)
	}
	return &stats
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected error kind %d, got %d (%v)", want, got, err)
	}
}
