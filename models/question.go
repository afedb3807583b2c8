package models

// Question はJSONファイルから読み込まれるクイズ問題を表します。
type Question struct {
	QuestionID    string            `json:"question_id"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Difficulty    string            `json:"difficulty"` // "easy", "normal", "medium", "hard"
}
