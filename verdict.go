package glyphcheck

import (
	"encoding/json"
	"fmt"
)

// Banner texts shown to the person drawing.
const (
	BannerCorrect   = "CORRECT"
	BannerIncorrect = "INCORRECT"
)

// Verdict is the outcome of one analysis request. The core keeps no history;
// a verdict is consumed once by the caller and discarded.
type Verdict struct {
	ID         CharacterID
	Found      bool
	Score      float64
	Threshold  float64
	Recognized bool
	Pass       bool
}

// Banner returns the text a UI shows for the verdict.
func (v Verdict) Banner() string {
	if v.Pass {
		return BannerCorrect
	}
	return BannerIncorrect
}

// String formats the verdict the way the checker prints it.
func (v Verdict) String() string {
	id := "none"
	if v.Found {
		id = string(v.ID)
	}
	return fmt.Sprintf("%s (character %s, similarity %.2f)", v.Banner(), id, v.Score)
}

type verdictJSON struct {
	Character  *string `json:"character"`
	Score      float64 `json:"score"`
	Threshold  float64 `json:"threshold"`
	Recognized bool    `json:"recognized_script"`
	Pass       bool    `json:"pass"`
	Banner     string  `json:"banner"`
}

// MarshalJSON encodes the verdict with a null character when nothing matched.
func (v Verdict) MarshalJSON() ([]byte, error) {
	out := verdictJSON{
		Score:      v.Score,
		Threshold:  v.Threshold,
		Recognized: v.Recognized,
		Pass:       v.Pass,
		Banner:     v.Banner(),
	}
	if v.Found {
		id := string(v.ID)
		out.Character = &id
	}
	return json.Marshal(out)
}
