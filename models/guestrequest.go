package models

// GuestRequest はクライアントからのゲスト認証リクエストを表します。
// トークンが提供されている場合、それを使用してユーザーを認証します。
// トークンがない場合、ニックネームに基づいて新しいトークンが生成されます。
type GuestRequest struct {
	Token    string `json:"token,omitempty"` // 既存のユーザー固有のJWTトークン
	Nickname string `json:"nickname"`        // ニックネーム
}
