package models

import (
	"gorm.io/gorm"
)

// User モデルの定義
type User struct {
	gorm.Model        // gorm.Modelを埋め込むことでID、CreatedAt、UpdatedAt、DeletedAtフィールドが自動的に追加されます
	Nickname   string `gorm:"not null"` // ゲーム画面に表示されるニックネーム
}
