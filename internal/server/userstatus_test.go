package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumix/resumix/internal/document"
	"github.com/resumix/resumix/internal/types"
)

// statusDoc builds a document with total items of which tweaked have a
// non-default weight.
func statusDoc(total, tweaked int) types.Document {
	doc := document.Default()
	for i := 0; i < total; i++ {
		doc = document.AddItem(doc, 0)
	}
	for i := 0; i < tweaked; i++ {
		doc = document.SetItemParam(doc, 0, i, document.ParamWeight, 1.5)
	}
	return doc
}

func TestComputeUserStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		tweaked  int
		resume   types.Level
		tweak    types.Level
		generate types.Level
	}{
		{"empty", 0, 0, types.LevelPoor, types.LevelPoor, types.LevelPoor},
		{"three items", 3, 3, types.LevelPoor, types.LevelPoor, types.LevelPoor},
		{"four items none tweaked", 4, 0, types.LevelFair, types.LevelPoor, types.LevelPoor},
		{"four items half tweaked", 4, 2, types.LevelFair, types.LevelFair, types.LevelFair},
		{"four items mostly tweaked", 4, 3, types.LevelFair, types.LevelStrong, types.LevelGood},
		{"seven items", 7, 7, types.LevelFair, types.LevelStrong, types.LevelGood},
		{"eight items none tweaked", 8, 0, types.LevelStrong, types.LevelPoor, types.LevelGood},
		{"eight items half tweaked", 8, 4, types.LevelStrong, types.LevelFair, types.LevelGood},
		{"eight items mostly tweaked", 8, 5, types.LevelStrong, types.LevelStrong, types.LevelStrong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ComputeUserStatus(statusDoc(tt.total, tt.tweaked))
			assert.Equal(t, tt.total, status.ItemCount)
			assert.Equal(t, tt.resume, status.ResumeState, "resume state")
			assert.Equal(t, tt.tweak, status.TweakStatus, "tweak status")
			assert.Equal(t, tt.generate, status.GenerateStatus, "generate status")
		})
	}
}

func TestComputeUserStatusBiasCountsAsTweak(t *testing.T) {
	doc := statusDoc(8, 0)
	for i := 0; i < 5; i++ {
		doc = document.SetItemParam(doc, 0, i, document.ParamBias, 0.5)
	}
	status := ComputeUserStatus(doc)
	assert.Equal(t, types.LevelStrong, status.TweakStatus)
}

func TestComputeUserStatusCountsAcrossSections(t *testing.T) {
	doc := statusDoc(3, 0)
	doc = document.AddSection(doc)
	doc = document.AddItem(doc, 1)

	status := ComputeUserStatus(doc)
	assert.Equal(t, 4, status.ItemCount)
	assert.Equal(t, types.LevelFair, status.ResumeState)
}

func TestStatusForStored(t *testing.T) {
	t.Run("nil blob is empty", func(t *testing.T) {
		status := statusForStored(nil)
		assert.Zero(t, status.ItemCount)
		assert.Equal(t, types.LevelPoor, status.ResumeState)
	})

	t.Run("corrupt blob is empty", func(t *testing.T) {
		status := statusForStored([]byte(`{"sections": "nope"}`))
		assert.Zero(t, status.ItemCount)
	})

	t.Run("valid blob is counted", func(t *testing.T) {
		raw, err := json.Marshal(statusDoc(5, 0))
		require.NoError(t, err)
		status := statusForStored(raw)
		assert.Equal(t, 5, status.ItemCount)
		assert.Equal(t, types.LevelFair, status.ResumeState)
	})
}
