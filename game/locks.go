package game

import (
	"sync"
)

// ルームごとの排他制御。read-check-compute-writeの一連の処理の間、
// 同じルームに対する操作を直列化します。別ルームへの操作は並行に進みます。
var roomLocks = struct {
	sync.Mutex
	entries map[uint]*sync.Mutex
}{entries: make(map[uint]*sync.Mutex)}

// lockRoom は指定ルームのミューテックスを返します。
func lockRoom(roomID uint) *sync.Mutex {
	roomLocks.Lock()
	defer roomLocks.Unlock()

	mu, exists := roomLocks.entries[roomID]
	if !exists {
		mu = &sync.Mutex{}
		roomLocks.entries[roomID] = mu
	}
	return mu
}
