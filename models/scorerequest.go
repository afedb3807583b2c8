package models

// ScoreUpdateRequest は正答時のスコア加算リクエストを表します。
type ScoreUpdateRequest struct {
	ScoreIncrement int `json:"score_increment"`
}
