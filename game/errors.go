package game

import (
	"errors"
	"net/http"
)

// Kind はゲーム操作が失敗した理由の分類です。
type Kind int

const (
	KindNotFound        Kind = iota + 1 // ルーム・ユーザー・参加情報が存在しない
	KindInvalidState                    // 現在のルーム状態では実行できない操作
	KindNotYourTurn                     // 手番を持たないプレイヤーによる操作
	KindConflict                        // 同じルームへの二重参加
	KindFull                            // ルームの定員超過
	KindInvalidInput                    // 不正な入力値
	KindNoActivePlayers                 // activeプレイヤー不在。playing中には到達しないはずの防御的エラー
)

// Error はKindとメッセージを持つゲーム操作エラーです。
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf はエラーからKindを取り出します。ゲーム操作エラーでない場合は0を返します。
func KindOf(err error) Kind {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Kind
	}
	return 0
}

// HTTPStatus はエラーの種類をHTTPステータスコードに対応させます。
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindNotYourTurn:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState, KindFull, KindInvalidInput, KindNoActivePlayers:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
