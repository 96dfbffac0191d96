package types

import (
	"encoding/json"
	"fmt"
)

// Level is one of five ordinal readiness levels reported per dashboard
// step. On the wire it is a single letter, kept from the original traffic
// lights: "" (missing), r (poor), o (fair), y (good), g (strong).
type Level int

// Readiness levels, weakest to strongest.
const (
	LevelMissing Level = iota
	LevelPoor
	LevelFair
	LevelGood
	LevelStrong
)

var levelWire = map[Level]string{
	LevelMissing: "",
	LevelPoor:    "r",
	LevelFair:    "o",
	LevelGood:    "y",
	LevelStrong:  "g",
}

var levelNames = map[Level]string{
	LevelMissing: "missing",
	LevelPoor:    "poor",
	LevelFair:    "fair",
	LevelGood:    "good",
	LevelStrong:  "strong",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// MarshalJSON encodes the level as its wire letter.
func (l Level) MarshalJSON() ([]byte, error) {
	w, ok := levelWire[l]
	if !ok {
		return nil, fmt.Errorf("unknown level: %d", int(l))
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a wire letter into a level. Unknown letters decode
// to LevelMissing rather than erroring; the field is advisory only.
func (l *Level) UnmarshalJSON(data []byte) error {
	var w string
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	for level, letter := range levelWire {
		if letter == w {
			*l = level
			return nil
		}
	}
	*l = LevelMissing
	return nil
}

// UserStatus summarizes how ready a user's stored resume is for
// generation. It is computed server-side on every reauthentication and is
// purely advisory for dashboard display, never an access-control input.
type UserStatus struct {
	ItemCount      int   `json:"item_count"`
	ResumeState    Level `json:"resume_state"`
	TweakStatus    Level `json:"tweak_status"`
	GenerateStatus Level `json:"generate_status"`
}
