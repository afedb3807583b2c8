package questions

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"quizserver/models"
)

// 出題可能な難易度の一覧
var validDifficulties = map[string]bool{
	"easy":   true,
	"normal": true,
	"medium": true,
	"hard":   true,
}

// Bank はJSONファイルから読み込まれた問題データを保持します。
type Bank struct {
	questions []models.Question
}

// LoadBank は問題ファイルを読み込んでBankを作成します。
func LoadBank(filename string) (*Bank, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var loaded []models.Question
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("問題ファイルの解析に失敗しました: %v", err)
	}

	return &Bank{questions: loaded}, nil
}

// IsValidDifficulty は指定された難易度が出題可能かどうかを返します。
func IsValidDifficulty(difficulty string) bool {
	return validDifficulties[difficulty]
}

// Random は指定された難易度の問題をランダムに一問返します。
// 該当する問題が存在しない場合はfalseを返します。
func (b *Bank) Random(difficulty string) (models.Question, bool) {
	filtered := make([]models.Question, 0, len(b.questions))
	for _, q := range b.questions {
		if q.Difficulty == difficulty {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) == 0 {
		return models.Question{}, false
	}

	return filtered[rand.Intn(len(filtered))], true
}

// Size は読み込まれている問題数を返します。
func (b *Bank) Size() int {
	return len(b.questions)
}
